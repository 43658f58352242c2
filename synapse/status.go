// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package synapse

// protocol status codes
const (
	StatusSuccess            int32 = 200
	StatusNoContent          int32 = 204
	StatusBadRequest         int32 = 400
	StatusUnauthorized       int32 = 401
	StatusForbidden          int32 = 403
	StatusNotFound           int32 = 404
	StatusTimeout            int32 = 408
	StatusTooManyRequests    int32 = 429
	StatusInternalError      int32 = 500
	StatusServiceUnavailable int32 = 503
	StatusGatewayTimeout     int32 = 504
)

// protocol status messages
const (
	MessageSuccess            = "Success"
	MessageUnauthorized       = "Signature verification failed"
	MessageForbidden          = "Blacklisted"
	MessageNotFound           = "Synapse not found"
	MessageTimeout            = "Request timeout"
	MessageTooManyRequests    = "Too many requests"
	MessageInternalError      = "Internal server error"
	MessageServiceUnavailable = "Service unavailable"
)

// StatusText - default message for a status code
func StatusText(code int32) string {
	switch code {
	case StatusSuccess:
		return MessageSuccess
	case StatusUnauthorized:
		return MessageUnauthorized
	case StatusForbidden:
		return MessageForbidden
	case StatusNotFound:
		return MessageNotFound
	case StatusTimeout:
		return MessageTimeout
	case StatusTooManyRequests:
		return MessageTooManyRequests
	case StatusInternalError:
		return MessageInternalError
	case StatusServiceUnavailable:
		return MessageServiceUnavailable
	default:
		return ""
	}
}
