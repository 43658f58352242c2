// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/axond/dendrite"
)

func runHealth(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)
	ctx := context.Background()

	axons, err := parseTargets(ctx, []string{c.String("target")})
	if nil != err {
		return err
	}

	status, err := m.dendrite.Health(ctx, axons[0])
	if nil != err {
		return err
	}
	if 200 != status {
		return fmt.Errorf("axon: %s  health status: %d", m.dendrite.Endpoint(axons[0]), status)
	}

	result := map[string]interface{}{
		"target": m.dendrite.Endpoint(axons[0]),
		"status": status,
	}
	if a, err := dendrite.TargetMultiaddr(axons[0]); nil == err {
		result["multiaddr"] = a.String()
	}
	return m.print(result)
}

func runTarget(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	axons, err := parseTargets(context.Background(), []string{c.String("target")})
	if nil != err {
		return err
	}

	result := map[string]interface{}{
		"axon": axons[0],
	}
	if a, err := dendrite.TargetMultiaddr(axons[0]); nil == err {
		result["multiaddr"] = a.String()
	}
	return m.print(result)
}
