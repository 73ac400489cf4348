package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKit(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"g", "Kit G"},
		{"m masculino", "Kit M Masculino"},
		{"M   Masculino", "Kit M Masculino"},
		{"  kit gg feminino ", "Kit GG Feminino"},
		{"KIT p infantil", "Kit P Infantil"},
		{"xxg UNISSEX adulto", "Kit XXG Unissex Adulto"},
		{"Kit\tggg", "Kit GGG"},
		{"pp", "Kit PP"},
		{"Kits M", "Kit Kits M"},
		{"camiseta m", "Kit camiseta M"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKit(tt.raw))
		})
	}
}

func TestNormalizeKit_Idempotent(t *testing.T) {
	for _, raw := range []string{"m masculino", "KIT gg feminino", "xg", "Kit P Infantil"} {
		once := NormalizeKit(raw)
		assert.Equal(t, once, NormalizeKit(once), "normalizing %q twice", raw)
	}
}
