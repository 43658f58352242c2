// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type UnauthorisedError GenericError

// common errors - keep in alphabetic order
var (
	CertificateFileExists       = ExistsError("certificate file already exists")
	DatabaseIsNotSet            = ProcessError("database is not set")
	HandlerIsNil                = InvalidError("handler is nil")
	InvalidAxon                 = InvalidError("axon is not serving")
	InvalidCount                = InvalidError("invalid count")
	InvalidDatabaseVersion      = InvalidError("invalid database version")
	InvalidDnsTxtRecord         = InvalidError("invalid DNS TXT record")
	InvalidDomain               = InvalidError("invalid domain")
	InvalidHotkey               = UnauthorisedError("invalid hotkey")
	InvalidIPAddress            = InvalidError("invalid IP address")
	InvalidJSON                 = InvalidError("invalid JSON")
	InvalidKeyFile              = InvalidError("invalid key file")
	InvalidPort                 = InvalidError("invalid port")
	InvalidSeedLength           = LengthError("invalid seed length")
	InvalidSignatureHex         = UnauthorisedError("invalid signature hex")
	InvalidSignatureLength      = LengthError("invalid signature length")
	InvalidTarget               = InvalidError("invalid target")
	KeyFileExists               = ExistsError("key file already exists")
	MissingParameters           = InvalidError("missing parameters")
	RateLimiting                = ProcessError("rate limiting")
	SignatureVerificationFailed = UnauthorisedError("signature verification failed")
	UnsupportedAddressType      = InvalidError("unsupported address type")
	WrongChecksum               = InvalidError("wrong checksum")
	WrongNetwork                = InvalidError("wrong network prefix")
	WrongPassword               = InvalidError("wrong password")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string       { return string(e) }
func (e InvalidError) Error() string      { return string(e) }
func (e LengthError) Error() string       { return string(e) }
func (e NotFoundError) Error() string     { return string(e) }
func (e ProcessError) Error() string      { return string(e) }
func (e UnauthorisedError) Error() string { return string(e) }

// determine the class of an error
func IsErrExists(e error) bool       { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool      { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool       { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool     { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool      { _, ok := e.(ProcessError); return ok }
func IsErrUnauthorised(e error) bool { _, ok := e.(UnauthorisedError); return ok }
