// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"
)

func runCall(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	ctx := context.Background()

	axons, err := parseTargets(ctx, []string{c.String("target")})
	if nil != err {
		return err
	}

	s, err := makeSynapse(c.String("name"), c.String("fields"))
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "call: %s  synapse: %s\n", m.dendrite.Endpoint(axons[0]), s.RouteName())
	}

	response, err := m.dendrite.Call(ctx, axons[0], s)
	return m.print(makeReply(m.dendrite.Endpoint(axons[0]), response, err))
}
