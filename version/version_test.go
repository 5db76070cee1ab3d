package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"dev", Info{Version: "dev", CommitHash: "dev"}, "itl2py/dev"},
		{"tagged", Info{Version: "v0.3.0", CommitHash: "0123456789abc"}, "itl2py/0.3.0+0123456"},
		{"short commit", Info{Version: "0.3.0", CommitHash: "abc"}, "itl2py/0.3.0+abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.generator())
			assert.True(t, tt.info.SameGenerator(tt.want))
			assert.Equal(t, tt.want+" (built now)", Info{Version: tt.info.Version, CommitHash: tt.info.CommitHash, BuildTime: "now"}.String())
		})
	}
}

func TestSameGenerator(t *testing.T) {
	info := Info{Version: "v0.3.0", CommitHash: "0123456789"}
	assert.False(t, info.SameGenerator("itl2py/0.2.0+0123456"))
	assert.False(t, info.SameGenerator(""))
}

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.GoVersion)
	assert.Equal(t, "itl2py/dev", info.Generator)
}
