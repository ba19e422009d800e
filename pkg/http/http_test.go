// Copyright 2026 Arcentra Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttp_SetDefaults(t *testing.T) {
	h := &Http{}
	h.SetDefaults()
	assert.Equal(t, "127.0.0.1:8080", h.Addr())
	assert.Equal(t, "X-Api-Key", h.APIKeyHeader)
	assert.Equal(t, 10*1024*1024, h.FiberConfig().BodyLimit)
}

func TestHttp_MatchAPI(t *testing.T) {
	h := &Http{APIs: []API{
		{Name: "users", Prefix: "/v1", Upstream: "http://a"},
		{Name: "users-admin", Prefix: "/v1/admin", Upstream: "http://b"},
	}}
	h.SetDefaults()
	require.NoError(t, h.Validate())

	api, ok := h.MatchAPI("/v1/admin/users")
	require.True(t, ok)
	assert.Equal(t, "users-admin", api.Name)

	api, ok = h.MatchAPI("/v1/users")
	require.True(t, ok)
	assert.Equal(t, "users", api.Name)

	_, ok = h.MatchAPI("/v10/users")
	assert.False(t, ok)
	_, ok = h.MatchAPI("/health")
	assert.False(t, ok)
}

func TestHttp_Validate(t *testing.T) {
	tests := []struct {
		name string
		api  API
	}{
		{"missing name", API{Prefix: "/a", Upstream: "http://a"}},
		{"relative prefix", API{Name: "a", Prefix: "a", Upstream: "http://a"}},
		{"missing upstream", API{Name: "a", Prefix: "/a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Http{APIs: []API{tt.api}}
			assert.Error(t, h.Validate())
		})
	}
}
