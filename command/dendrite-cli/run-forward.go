// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/axond/synapse"
)

func runForward(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	ctx := context.Background()

	axons := []synapse.AxonInfo{}
	if domain := c.String("seed"); "" != domain {
		found, err := seedTargets(domain, c.String("nameserver"))
		if nil != err {
			return err
		}
		if m.verbose {
			fmt.Fprintf(m.e, "seed: %s  axons: %d\n", domain, len(found))
		}
		axons = append(axons, found...)
	}
	if targets := c.StringSlice("target"); len(targets) > 0 || 0 == len(axons) {
		listed, err := parseTargets(ctx, targets)
		if nil != err {
			return err
		}
		axons = append(axons, listed...)
	}

	s, err := makeSynapse(c.String("name"), c.String("fields"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "forward to: %d axons  synapse: %s\n", len(axons), s.RouteName())
	}

	results := m.dendrite.CallMany(ctx, axons, s)

	replies := make([]reply, len(results))
	for i, r := range results {
		replies[i] = makeReply(m.dendrite.Endpoint(axons[i]), r.Synapse, r.Err)
	}
	return m.print(replies)
}
