// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package axon_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/axond/axon"
	"github.com/bitmark-inc/axond/axon/mocks"
	"github.com/bitmark-inc/axond/fault"
	"github.com/bitmark-inc/axond/fixtures"
	"github.com/bitmark-inc/axond/synapse"
)

func TestRegistryAttach(t *testing.T) {
	r := axon.NewRegistry()

	assert.Equal(t, fault.HandlerIsNil, r.Attach("Echo", nil), "nil handler accepted")
	assert.Equal(t, fault.HandlerIsNil, r.AttachFunc("Echo", nil), "nil function accepted")
	assert.Equal(t, fault.MissingParameters, r.AttachFunc("", echo), "empty name accepted")

	assert.Nil(t, r.AttachFunc("Zeta", echo), "wrong attach error")
	assert.Nil(t, r.AttachFunc("Alpha", echo), "wrong attach error")
	assert.True(t, r.Has("Zeta"), "missing route")
	assert.Equal(t, []string{"Alpha", "Zeta"}, r.Names(), "wrong names")

	r.Detach("Zeta")
	assert.False(t, r.Has("Zeta"), "route not detached")
}

func TestRegistryLastWriteWins(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	first := mocks.NewMockHandler(ctl)
	second := mocks.NewMockHandler(ctl)
	second.EXPECT().Handle(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, s *synapse.Synapse) *synapse.Synapse {
		s.SetField("handler", "second")
		return s
	}).Times(1)

	configuration := axon.DefaultConfiguration()
	configuration.VerifySignatures = false
	a := newTestAxon(t, configuration, nil)
	assert.Nil(t, a.Attach("Echo", first), "wrong first attach error")
	assert.Nil(t, a.Attach("Echo", second), "wrong second attach error")

	w := serve(a, unsignedRequest("Echo", nil))
	assert.Equal(t, `{"handler":"second"}`, w.Body.String(), "wrong handler used")
}
