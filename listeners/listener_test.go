// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"context"
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/axond/certificate"
	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/fixtures"
	"github.com/bitmark-inc/axond/listeners"
)

var handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte("path: " + r.URL.Path))
})

func get(t *testing.T, client *http.Client, url string) string {
	resp, err := client.Get(url)
	require.Nil(t, err, "client get")
	defer resp.Body.Close()

	content, _ := ioutil.ReadAll(resp.Body)
	return string(content)
}

func TestNewRequiresParameters(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := listeners.New(nil, logger.New(fixtures.LogCategory), nil, handler)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestServeHTTP(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	l, err := listeners.New([]string{"127.0.0.1:0"}, logger.New(fixtures.LogCategory), nil, handler)
	require.Nil(t, err, "new")
	require.Nil(t, l.Serve(), "wrong Serve")

	addresses := l.Addresses()
	require.Equal(t, 1, len(addresses), "wrong address count")

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	url := fmt.Sprintf("http://%s/Echo", addresses[0])
	assert.Equal(t, "path: /Echo", get(t, client, url), "wrong response")

	assert.Nil(t, l.Shutdown(context.Background()), "wrong Shutdown")
	_, err = client.Get(url)
	assert.NotNil(t, err, "still serving after shutdown")
}

func TestServeHTTPS(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	dir, err := ioutil.TempDir("", "axond-listener")
	require.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certFile := filepath.Join(dir, "axond.crt")
	keyFile := filepath.Join(dir, "axond.key")
	require.Nil(t, certificate.MakeSelfSigned("test", certFile, keyFile, false, nil), "certificate")

	tlsConfig, _, err := certificate.Load(logger.New(fixtures.LogCategory), "test", certFile, keyFile)
	require.Nil(t, err, "load certificate")

	l, err := listeners.New([]string{"127.0.0.1:0"}, logger.New(fixtures.LogCategory), tlsConfig, handler)
	require.Nil(t, err, "new")
	require.Nil(t, l.Serve(), "wrong Serve")
	defer l.Shutdown(context.Background())

	customTransport := http.DefaultTransport.(*http.Transport).Clone()
	customTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // ignore certificate verification
	client := &http.Client{Transport: customTransport}

	url := fmt.Sprintf("https://%s/health", l.Addresses()[0])
	assert.Equal(t, "path: /health", get(t, client, url), "wrong response")
}

func TestServeBindFailure(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	first, err := listeners.New([]string{"127.0.0.1:0"}, logger.New(fixtures.LogCategory), nil, handler)
	require.Nil(t, err, "new")
	require.Nil(t, first.Serve(), "wrong Serve")
	defer first.Shutdown(context.Background())

	taken := first.Addresses()[0].String()
	second, err := listeners.New([]string{"127.0.0.1:0", taken}, logger.New(fixtures.LogCategory), nil, handler)
	require.Nil(t, err, "new")
	assert.NotNil(t, second.Serve(), "bound a used port")
	assert.Equal(t, 0, len(second.Addresses()), "addresses kept after failure")
}
