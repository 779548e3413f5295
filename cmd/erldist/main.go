package main

/*
* CLI for talking to epmd and peer nodes over the Erlang distribution
* protocol: register this process, look up or list other registrations,
* and drive a full handshake against a peer.
 */

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/ZentaChain/erldist/pkg/node"
)

func main() {
	app := cli.NewApp()
	app.Name = "erldist"
	app.Usage = "register, look up, and connect to Erlang-style distribution nodes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "epmd-host",
			Value: "127.0.0.1",
			Usage: "host running epmd",
		},
		cli.IntFlag{
			Name:  "epmd-port",
			Value: 4369,
			Usage: "epmd port",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "names",
			Usage:     "list every node registered with epmd",
			Action:    namesCommand,
			ArgsUsage: " ",
		},
		{
			Name:      "lookup",
			Usage:     "look up one node's port, type, protocol and version range",
			ArgsUsage: "NAME",
			Action:    lookupCommand,
		},
		{
			Name:      "register",
			Usage:     "register this process with epmd and hold the connection open",
			ArgsUsage: "NAME",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Usage: "distribution port to advertise",
				},
				cli.BoolFlag{
					Name:  "hidden",
					Usage: "register as a hidden (non-visible) node",
				},
			},
			Action: registerCommand,
		},
		{
			Name:   "dump",
			Usage:  "print epmd's internal dump text",
			Action: dumpCommand,
		},
		{
			Name:   "kill",
			Usage:  "ask epmd to exit",
			Action: killCommand,
		},
		{
			Name:      "connect",
			Usage:     "perform a full handshake against a peer node and report the negotiated flags",
			ArgsUsage: "PEER_NAME@HOST",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "as",
					Value: "erldist@localhost",
					Usage: "local node name to present during the handshake",
				},
				cli.StringFlag{
					Name:  "cookie, c",
					Value: "",
					Usage: "shared secret cookie",
				},
				cli.BoolFlag{
					Name:  "legacy",
					Usage: "send the legacy version-5 send_name form, upgrading via the complement message",
				},
				cli.IntFlag{
					Name:  "status-port",
					Usage: "if set, start a read-only HTTP status server on this port once connected",
				},
			},
			Action: connectCommand,
		},
	}
	app.CommandNotFound = func(c *cli.Context, command string) {
		fmt.Fprintln(os.Stderr, Red(fmt.Sprintf("no such command: %q", command)))
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, Red(err.Error()))
		os.Exit(1)
	}
}

func epmdEndpoint(c *cli.Context) (node.Endpoint, error) {
	return node.NewEndpointTCP4(c.GlobalString("epmd-host"), c.GlobalInt("epmd-port"))
}
