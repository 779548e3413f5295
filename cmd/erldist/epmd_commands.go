package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli"

	"github.com/ZentaChain/erldist/pkg/epmd"
)

func namesCommand(c *cli.Context) error {
	ep, err := epmdEndpoint(c)
	if err != nil {
		return err
	}
	client := epmd.NewClient(ep)

	nodes, err := client.Names(context.Background())
	if err != nil {
		return fmt.Errorf("names: %w", err)
	}
	if len(nodes) == 0 {
		fmt.Println(Yellow("no nodes registered"))
		return nil
	}
	for _, n := range nodes {
		fmt.Printf("%s at port %s\n", Cyan(n.Name), Green(fmt.Sprintf("%d", n.Port)))
	}
	return nil
}

func lookupCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("lookup: expected exactly one NAME argument")
	}
	ep, err := epmdEndpoint(c)
	if err != nil {
		return err
	}
	client := epmd.NewClient(ep)

	entry, err := client.GetNode(context.Background(), c.Args().First())
	if err != nil {
		return fmt.Errorf("lookup: %w", err)
	}
	fmt.Printf("%s: port=%s type=%v proto=%v versions=%d-%d extra=%q\n",
		Cyan(entry.Name), Green(fmt.Sprintf("%d", entry.Port)),
		entry.NodeType, entry.Protocol, entry.LowestVersion, entry.HighestVersion, entry.ExtraBytes)
	return nil
}

func registerCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("register: expected exactly one NAME argument")
	}
	port := c.Int("port")
	if port == 0 {
		return errors.New("register: -port is required")
	}
	ep, err := epmdEndpoint(c)
	if err != nil {
		return err
	}
	client := epmd.NewClient(ep)

	nodeType := epmd.NodeTypeNormal
	if c.Bool("hidden") {
		nodeType = epmd.NodeTypeHidden
	}

	reg, err := client.Register(context.Background(), epmd.NodeEntry{
		Name:           c.Args().First(),
		Port:           port,
		NodeType:       nodeType,
		Protocol:       epmd.ProtoTCPIPv4,
		HighestVersion: 6,
		LowestVersion:  5,
	})
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	defer reg.Close()

	fmt.Println(Green(fmt.Sprintf("registered %s on port %d, creation %d", c.Args().First(), port, reg.Creation)))
	fmt.Println(Yellow("holding registration open; press ctrl-c to unregister and exit"))
	select {}
}

func dumpCommand(c *cli.Context) error {
	ep, err := epmdEndpoint(c)
	if err != nil {
		return err
	}
	client := epmd.NewClient(ep)

	text, err := client.Dump(context.Background())
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	fmt.Print(text)
	return nil
}

func killCommand(c *cli.Context) error {
	ep, err := epmdEndpoint(c)
	if err != nil {
		return err
	}
	client := epmd.NewClient(ep)

	if err := client.Kill(context.Background()); err != nil {
		return fmt.Errorf("kill: %w", err)
	}
	fmt.Println(Green("epmd acknowledged kill"))
	return nil
}
