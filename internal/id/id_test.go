package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	ids := make(map[string]bool)
	count := 1000

	for range count {
		id, err := Generate("load")
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"load", "load"},
		{"seed", "seed"},
		{"custom", "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Generate(tt.prefix)
			require.NoError(t, err)

			require.True(t, strings.HasPrefix(id, tt.prefix+"-"))
			body := strings.TrimPrefix(id, tt.prefix+"-")
			assert.Len(t, body, Length)

			for _, c := range body {
				assert.True(t, strings.ContainsRune(alphabet, c), "unexpected character %q in %s", c, id)
			}
		})
	}
}

func TestMustGenerate(t *testing.T) {
	assert.NotPanics(t, func() {
		id := MustGenerate("load")
		assert.True(t, strings.HasPrefix(id, "load-"))
	})
}
