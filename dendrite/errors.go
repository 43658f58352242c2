// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dendrite

import (
	"fmt"
)

// TransportError - a request failure that is not a timeout or a
// refused connection
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: url: %s  error: %s", e.URL, e.Err)
}

// Unwrap - the underlying cause
func (e *TransportError) Unwrap() error {
	return e.Err
}
