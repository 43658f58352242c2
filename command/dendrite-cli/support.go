// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"io/ioutil"
	"os"
	"strings"

	"github.com/bitmark-inc/logger"
	"github.com/urfave/cli"

	"github.com/bitmark-inc/axond/dendrite"
	"github.com/bitmark-inc/axond/dendrite/stream"
	"github.com/bitmark-inc/axond/hotkey"
	"github.com/bitmark-inc/axond/seeds"
	"github.com/bitmark-inc/axond/synapse"
)

var (
	targetFlag = cli.StringFlag{
		Name:  "target, t",
		Value: "",
		Usage: "*axon `TARGET` [HOTKEY@]HOST:PORT or [HOTKEY@]MULTIADDR",
	}
	targetsFlag = cli.StringSliceFlag{
		Name:  "target, t",
		Usage: "+axon `TARGET`, repeat for each axon",
	}
	seedFlag = cli.StringFlag{
		Name:  "seed, s",
		Value: "",
		Usage: "+add the axons advertised in the TXT records of `DOMAIN`",
	}
	nameserverFlag = cli.StringFlag{
		Name:  "nameserver",
		Value: "",
		Usage: " query `HOST:PORT` for seed records [/etc/resolv.conf]",
	}
	nameFlag = cli.StringFlag{
		Name:  "name, n",
		Value: "",
		Usage: "*synapse `NAME`",
	}
	fieldsFlag = cli.StringFlag{
		Name:  "fields, f",
		Value: "{}",
		Usage: " application fields as a JSON `OBJECT`",
	}
)

// a hotkey file, or a fresh key when no file is given
func loadSigner(fileName string, password string) (*hotkey.Keypair, error) {
	if "" == fileName {
		return hotkey.New()
	}
	password, err := getPassword(password, false)
	if nil != err {
		return nil, err
	}
	return hotkey.LoadKeyFile(fileName, password)
}

// client TLS settings, nil when calls stay on plain http
//
// a CA file implies TLS
func clientTLS(enabled bool, caFile string, insecure bool) (*tls.Config, error) {
	if !enabled && "" == caFile && !insecure {
		return nil, nil
	}

	config := &tls.Config{
		InsecureSkipVerify: insecure,
	}
	if "" == caFile {
		return config, nil
	}

	pem, err := ioutil.ReadFile(caFile)
	if nil != err {
		return nil, err
	}
	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(pem) {
		return nil, ErrInvalidCertificateAuthority
	}
	config.RootCAs = roots
	return config, nil
}

func setupLogging(directory string, verbose bool) error {
	if err := os.MkdirAll(directory, 0700); nil != err {
		return err
	}
	level := "critical"
	if verbose {
		level = "debug"
	}
	return logger.Initialise(logger.Configuration{
		Directory: directory,
		File:      "dendrite-cli.log",
		Size:      1024 * 1024,
		Count:     2,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
}

// a synapse from the name and JSON fields options
func makeSynapse(name string, fields string) (*synapse.Synapse, error) {
	if "" == name {
		return nil, ErrMissingName
	}
	s := synapse.New(name)

	fields = strings.TrimSpace(fields)
	if "" == fields {
		return s, nil
	}
	extra := make(map[string]interface{})
	if err := json.Unmarshal([]byte(fields), &extra); nil != err {
		return nil, ErrInvalidFields
	}
	for k, v := range extra {
		s.SetField(k, v)
	}
	return s, nil
}

func parseTargets(ctx context.Context, targets []string) ([]synapse.AxonInfo, error) {
	if 0 == len(targets) {
		return nil, ErrMissingTarget
	}
	axons := make([]synapse.AxonInfo, 0, len(targets))
	for _, t := range targets {
		if "" == t {
			return nil, ErrMissingTarget
		}
		info, err := dendrite.ParseTarget(ctx, t)
		if nil != err {
			return nil, err
		}
		axons = append(axons, info)
	}
	return axons, nil
}

// axons from the TXT records of a domain
func seedTargets(domain string, nameserver string) ([]synapse.AxonInfo, error) {
	var resolver *seeds.Resolver
	if "" != nameserver {
		resolver = &seeds.Resolver{
			Servers: []string{nameserver},
		}
	} else {
		r, err := seeds.SystemResolver()
		if nil != err {
			return nil, err
		}
		resolver = r
	}
	return seeds.Targets(seeds.NewLookuper(logger.New("seeds"), resolver.LookupTXT), domain)
}

func makeProcessor(name string) (stream.Processor, error) {
	switch strings.ToLower(name) {
	case "text", "":
		return stream.NewText(), nil
	case "json", "jsonl", "json-lines":
		return stream.NewJSONLines(), nil
	case "sse", "events":
		return stream.NewSSE(), nil
	default:
		return nil, ErrInvalidProcessor
	}
}

// summary of one exchange for printing
type reply struct {
	Target        string                 `json:"target"`
	StatusCode    int32                  `json:"status_code"`
	StatusMessage string                 `json:"status_message,omitempty"`
	ProcessTime   float64                `json:"process_time"`
	AxonHotkey    string                 `json:"axon_hotkey,omitempty"`
	Fields        map[string]interface{} `json:"fields,omitempty"`
	Error         string                 `json:"error,omitempty"`
}

func makeReply(endpoint string, s *synapse.Synapse, err error) reply {
	r := reply{
		Target: endpoint,
	}
	if nil != err {
		r.Error = err.Error()
	}
	if nil == s {
		return r
	}
	r.StatusCode = s.Dendrite.GetStatusCode()
	r.StatusMessage = s.Dendrite.GetStatusMessage()
	r.ProcessTime = s.Dendrite.GetProcessTime()
	r.AxonHotkey = s.Axon.GetHotkey()
	if len(s.Extra) > 0 {
		r.Fields = s.Extra
	}
	return r
}
