package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/urfave/cli"

	"github.com/ZentaChain/erldist/pkg/channel"
	"github.com/ZentaChain/erldist/pkg/epmd"
	"github.com/ZentaChain/erldist/pkg/handshake"
	"github.com/ZentaChain/erldist/pkg/node"
	"github.com/ZentaChain/erldist/pkg/statusapi"
)

func channelFromConn(conn net.Conn, flags node.DistributionFlags) *channel.Channel {
	return channel.NewChannel(conn, flags, channel.DefaultTickInterval)
}

// connectCommand looks the peer up with epmd, dials it, runs a full
// client-side handshake, and (with -status-port) serves the resulting
// channel's stats over HTTP until interrupted.
func connectCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("connect: expected exactly one PEER_NAME@HOST argument")
	}
	peerName, err := node.ParseName(c.Args().First())
	if err != nil {
		return err
	}

	localName, err := node.ParseName(c.String("as"))
	if err != nil {
		return fmt.Errorf("connect: invalid -as value: %w", err)
	}
	creation, err := node.NewCreation()
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	local := node.NewLocalNode(localName, creation)

	epmdEp, err := node.NewEndpointTCP4(peerName.Host, c.GlobalInt("epmd-port"))
	if err != nil {
		return err
	}
	epmdClient := epmd.NewClient(epmdEp)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	entry, err := epmdClient.GetNode(ctx, peerName.Name)
	if err != nil {
		return fmt.Errorf("connect: looking up %s: %w", peerName, err)
	}
	fmt.Println(Cyan(fmt.Sprintf("found %s at %s:%d", peerName, peerName.Host, entry.Port)))

	conn, err := net.DialTimeout("tcp", fmt.Sprintf("%s:%d", peerName.Host, entry.Port), 10*time.Second)
	if err != nil {
		return fmt.Errorf("connect: dialing %s: %w", peerName, err)
	}

	h := handshake.NewClientSideHandshake(conn, local, c.String("cookie"))
	h.ForceVersion5 = c.Bool("legacy")
	h.PeerSupportsHandshake23 = entry.HighestVersion >= 6

	status, err := h.SendName()
	if err != nil {
		conn.Close()
		return fmt.Errorf("connect: send_name: %w", err)
	}
	if !handshake.IsAcceptedStatus(status) {
		conn.Close()
		return fmt.Errorf("connect: peer refused with status %q", status)
	}

	negotiatedName, flags, err := h.Finish(true)
	if err != nil {
		conn.Close()
		return fmt.Errorf("connect: handshake: %w", err)
	}
	fmt.Println(Green(fmt.Sprintf("connected to %s, negotiated flags: %s", negotiatedName, flags)))

	ch := channelFromConn(conn, flags)
	ch.RunTicks()
	defer ch.Close()

	if port := c.Int("status-port"); port > 0 {
		registry := statusapi.NewRegistry()
		registry.Register(negotiatedName.String(), ch)
		cfg := statusapi.DefaultConfig()
		cfg.Port = port
		server := statusapi.NewServer(registry, cfg)
		fmt.Println(Yellow(fmt.Sprintf("serving status on :%d", port)))
		return server.Start(context.Background())
	}

	fmt.Println(Yellow("handshake complete; no -status-port given, exiting"))
	return nil
}
