// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/bitmark-inc/axond/certificate"
	"github.com/bitmark-inc/axond/hotkey"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-hotkey", "hotkey":
		hotkeyFilename := getFilenameWithDirectory(arguments, defaultHotkeyFile)

		keypair, err := hotkey.New()
		if nil != err {
			fmt.Printf("generate hotkey: %q error: %s\n", hotkeyFilename, err)
			exitwithstatus.Exit(1)
		}

		password, err := getPassword("hotkey password: ", true)
		if nil != err {
			fmt.Printf("generate hotkey: %q error: %s\n", hotkeyFilename, err)
			exitwithstatus.Exit(1)
		}

		if err := hotkey.SaveKeyFile(hotkeyFilename, keypair, password); nil != err {
			fmt.Printf("generate hotkey: %q error: %s\n", hotkeyFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated hotkey: %s in: %q\n", keypair.Hotkey(), hotkeyFilename)

	case "gen-certificate", "cert":
		certificateFilename := getFilenameWithDirectory(arguments, defaultCertificateFile)
		privateKeyFilename := getFilenameWithDirectory(arguments, defaultKeyFile)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.MakeSelfSigned("axon", certificateFilename, privateKeyFilename, 0 != len(addresses), addresses)
		if nil != err {
			fmt.Printf("generate key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "config-test", "cfg", "info":
		return false // defer processing until configuration is read

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version string\n\n")

		fmt.Printf("  gen-hotkey [DIR]           (hotkey) - create encrypted hotkey in: %q\n", "DIR/"+defaultHotkeyFile)
		fmt.Printf("                                        password from: %s or the terminal\n", passwordEnvironment)
		fmt.Printf("\n")

		fmt.Printf("  gen-certificate [DIR]      (cert)   - create private key in:  %q\n", "DIR/"+defaultKeyFile)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+defaultCertificateFile)
		fmt.Printf("\n")

		fmt.Printf("  gen-certificate [DIR] [IPs...]      - create private key in:  %q\n", "DIR/"+defaultKeyFile)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+defaultCertificateFile)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  info                                - show the hotkey and advertised axon info\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		printJSON(options)

	default: // unknown commands fall through
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

func printJSON(message interface{}) {
	b, err := json.Marshal(message)
	if err != nil {
		exitwithstatus.Message("error: %s", err)
	}
	var out bytes.Buffer
	_ = json.Indent(&out, b, "", "  ")
	_, _ = out.WriteTo(os.Stdout)
	_, _ = os.Stdout.WriteString("\n")
}

// first argument is an optional directory
func getFilenameWithDirectory(arguments []string, name string) string {
	dir := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		dir = arguments[0]
	}
	return filepath.Join(dir, name)
}
