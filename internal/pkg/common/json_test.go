package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var req ChatRequest
	require.NoError(t, DecodeJSON(strings.NewReader(`{"prompt":"egg","extra":true}`), &req))
	assert.Equal(t, "egg", req.Prompt)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"not json", `not json`},
		{"wrong type", `{"prompt":42}`},
		{"trailing data", `{"prompt":"egg"} {"prompt":"rice"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req ChatRequest
			assert.Error(t, DecodeJSON(strings.NewReader(tt.body), &req))
		})
	}
}
