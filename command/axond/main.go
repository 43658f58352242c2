// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/axond/axon"
	"github.com/bitmark-inc/axond/background"
	"github.com/bitmark-inc/axond/blacklist"
	"github.com/bitmark-inc/axond/certificate"
	"github.com/bitmark-inc/axond/hotkey"
	"github.com/bitmark-inc/axond/listeners"
	"github.com/bitmark-inc/axond/storage"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

const (
	shutdownTimeout = 30 * time.Second
)

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "variable", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// variables visible to the configuration file: -s name=value
	variables := make(map[string]string)
	for _, v := range options["variable"] {
		s := strings.SplitN(v, "=", 2)
		if 2 != len(s) || "" == s[0] {
			exitwithstatus.Message("%s: invalid variable: %q", program, v)
		}
		variables[s[0]] = s[1]
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile, variables)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// the identity is needed before anything is started
	password, err := getPassword("hotkey password: ", false)
	if nil != err {
		exitwithstatus.Message("%s: hotkey password error: %s", program, err)
	}
	keypair, err := hotkey.LoadKeyFile(theConfiguration.HotkeyFile, password)
	if nil != err {
		exitwithstatus.Message("%s: hotkey: %q  error: %s", program, theConfiguration.HotkeyFile, err)
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// ------------------
	// start of real main
	// ------------------

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// optional persistence of the admin lists
	var persister axon.Persister
	if "" != theConfiguration.Database {
		log.Infof("database: %q", theConfiguration.Database)
		db, err := storage.Open(logger.New("storage"), theConfiguration.Database, storage.ReadWrite)
		if nil != err {
			log.Criticalf("storage open error: %s", err)
			exitwithstatus.Message("storage open error: %s", err)
		}
		defer db.Close()
		persister = db
	}

	registry := axon.NewRegistry()
	if err := registerHandlers(registry); nil != err {
		log.Criticalf("register handlers error: %s", err)
		exitwithstatus.Message("register handlers error: %s", err)
	}

	server, err := axon.New(logger.New("axon"), theConfiguration.Axon, keypair, registry, persister)
	if nil != err {
		log.Criticalf("axon initialise error: %s", err)
		exitwithstatus.Message("axon initialise error: %s", err)
	}
	log.Infof("advertise: %s", server.Info(0))

	if len(arguments) > 0 && "info" == arguments[0] {
		printJSON(map[string]interface{}{
			"hotkey":   server.Hotkey(),
			"axon":     server.Info(0),
			"synapses": registry.Names(),
		})
		return
	}

	// background processes
	processes := background.Processes{}
	if "" != theConfiguration.BlacklistFile {
		watcher, err := blacklist.New(logger.New("blacklist"), theConfiguration.BlacklistFile, server)
		if nil != err {
			log.Criticalf("blacklist initialise error: %s", err)
			exitwithstatus.Message("blacklist initialise error: %s", err)
		}
		if err := watcher.Start(); nil != err {
			log.Criticalf("blacklist start error: %s", err)
			exitwithstatus.Message("blacklist start error: %s", err)
		}
		processes = append(processes, watcher)
	}
	bg := background.Start(processes, nil)
	defer bg.Stop()

	// TLS only when a certificate is configured
	https := theConfiguration.HTTPS
	var tlsConfig *tls.Config
	if "" != https.Certificate {
		c, _, err := certificate.Load(log, "axon", https.Certificate, https.PrivateKey)
		if nil != err {
			log.Criticalf("certificate error: %s", err)
			exitwithstatus.Message("certificate error: %s", err)
		}
		tlsConfig = c
	}

	listener, err := listeners.New(https.Listen, logger.New("listener"), tlsConfig, server)
	if nil != err {
		log.Criticalf("listener initialise error: %s", err)
		exitwithstatus.Message("listener initialise error: %s", err)
	}
	if err := listener.Serve(); nil != err {
		log.Criticalf("listener serve error: %s", err)
		exitwithstatus.Message("listener serve error: %s", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := listener.Shutdown(ctx); nil != err {
			log.Errorf("listener shutdown error: %s", err)
		}
	}()

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
}
