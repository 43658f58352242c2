// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/axond/dendrite"
)

type metadata struct {
	verbose  bool
	dendrite *dendrite.Dendrite
	e        io.Writer
	w        io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "dendrite-cli"
	app.Usage = "send synapses to axons"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "hotkey-file, k",
			Value: "",
			Usage: " encrypted hotkey `FILE` [ephemeral hotkey]",
		},
		cli.StringFlag{
			Name:  "password, p",
			Value: "",
			Usage: " hotkey `PASSWORD` [$" + passwordEnvironment + " or prompt]",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Value: 0,
			Usage: " request `DURATION` [12s]",
		},
		cli.BoolFlag{
			Name:  "tls",
			Usage: " call axons over https",
		},
		cli.StringFlag{
			Name:  "ca",
			Value: "",
			Usage: " trust the certificates in PEM `FILE`, implies --tls [system roots]",
		},
		cli.BoolFlag{
			Name:  "insecure",
			Usage: " skip axon certificate verification, implies --tls",
		},
		cli.StringFlag{
			Name:  "log-directory",
			Value: filepath.Join(os.TempDir(), "dendrite-cli"),
			Usage: " log `DIR`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "call",
			Usage:     "send one synapse to one axon",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				targetFlag,
				nameFlag,
				fieldsFlag,
			},
			Action: runCall,
		},
		{
			Name:      "forward",
			Usage:     "send the same synapse to several axons at once",
			ArgsUsage: "\n   (* = required, + = at least one)",
			Flags: []cli.Flag{
				targetsFlag,
				seedFlag,
				nameserverFlag,
				nameFlag,
				fieldsFlag,
			},
			Action: runForward,
		},
		{
			Name:      "stream",
			Usage:     "send a synapse and print the streamed reply",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				targetFlag,
				nameFlag,
				fieldsFlag,
				cli.StringFlag{
					Name:  "processor, r",
					Value: "text",
					Usage: " chunk `FORMAT` [text|json|sse]",
				},
			},
			Action: runStream,
		},
		{
			Name:      "health",
			Usage:     "check that an axon is answering",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				targetFlag,
			},
			Action: runHealth,
		},
		{
			Name:      "target",
			Usage:     "decode a target into axon info",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				targetFlag,
			},
			Action: runTarget,
		},
		{
			Name:      "hotkey",
			Usage:     "show the hotkey used for signing",
			ArgsUsage: " ",
			Action:    runHotkey,
		},
		{
			Name:      "generate",
			Usage:     "generate an encrypted hotkey file",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "output, o",
					Value: "",
					Usage: "*hotkey `FILE`",
				},
			},
			Action: runGenerate,
		},
		{
			Name:      "version",
			Usage:     "display dendrite-cli version",
			ArgsUsage: " ",
			Action:    runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// commands that never sign
		command := c.Args().Get(0)
		switch command {
		case "", "version", "help", "h", "generate", "target":
			c.App.Metadata["config"] = &metadata{
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		if err := setupLogging(c.GlobalString("log-directory"), verbose); nil != err {
			return err
		}

		signer, err := loadSigner(c.GlobalString("hotkey-file"), c.GlobalString("password"))
		if nil != err {
			return err
		}
		if verbose {
			fmt.Fprintf(e, "hotkey: %s\n", signer.Hotkey())
		}

		tlsConfig, err := clientTLS(c.GlobalBool("tls"), c.GlobalString("ca"), c.GlobalBool("insecure"))
		if nil != err {
			return err
		}

		d := dendrite.New(logger.New("dendrite"), signer)
		if timeout := c.GlobalDuration("timeout"); timeout > 0 {
			d.WithTimeout(timeout)
		}
		if nil != tlsConfig {
			d.WithTLS(tlsConfig)
		}

		c.App.Metadata["config"] = &metadata{
			verbose:  verbose,
			dendrite: d,
			e:        e,
			w:        w,
		}
		return nil
	}

	app.After = func(c *cli.Context) error {
		m, ok := c.App.Metadata["config"].(*metadata)
		if !ok || nil == m.dendrite {
			return nil
		}
		m.dendrite.Close()
		logger.Finalise()
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
