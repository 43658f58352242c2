// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"fmt"

	"github.com/bitmark-inc/axond/background"
)

type reloader struct {
	name string
}

func (r *reloader) Run(args interface{}, shutdown <-chan struct{}) {
	fmt.Printf("watching: %s\n", r.name)
	<-shutdown
	fmt.Printf("stopped: %s\n", r.name)
}

func Example() {
	processes := background.Processes{
		&reloader{name: "blacklist"},
	}

	p := background.Start(processes, nil)
	p.Stop()

	// Output:
	// watching: blacklist
	// stopped: blacklist
}
