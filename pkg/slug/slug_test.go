package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Large Appliance", "large-appliance"},
		{"Mobiles & Accessories", "mobiles-accessories"},
		{"  Sound  Systems!  ", "sound-systems"},
		{"TV-55\"", "tv-55"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Generate(tt.in), tt.in)
	}
}
