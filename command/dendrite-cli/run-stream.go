// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli"
)

func runStream(c *cli.Context) error {

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

	processor, err := makeProcessor(c.String("processor"))
	if nil != err {
		return err
	}

	st, err := m.dendrite.CallStream(ctx, axons[0], s, processor)
	if nil != err {
		return err
	}
	defer st.Close()

	if m.verbose {
		h := st.Synapse()
		fmt.Fprintf(m.e, "axon: %s  process time: %f\n", h.Axon.GetHotkey(), h.Axon.GetProcessTime())
	}

	// chunks are printed as they arrive
	for {
		chunk, err := st.Next()
		if io.EOF == err {
			return nil
		}
		if nil != err {
			return err
		}
		switch v := chunk.(type) {
		case string:
			fmt.Fprintln(m.w, v)
		default:
			if err := m.print(v); nil != err {
				return err
			}
		}
	}
}
