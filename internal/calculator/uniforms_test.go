package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/duoreg/internal/models"
)

func TestUniformTotals(t *testing.T) {
	tests := []struct {
		name    string
		entries []*models.Entry
		want    map[string]int
	}{
		{
			name:    "no entries",
			entries: nil,
			want:    map[string]int{},
		},
		{
			name: "equivalent raw labels count together",
			entries: []*models.Entry{
				{Athlete1: models.Athlete{Kit: "m masculino"}, Athlete2: models.Athlete{Kit: "M   Masculino"}},
			},
			want: map[string]int{"Kit M Masculino": 2},
		},
		{
			name: "legacy combined string only",
			entries: []*models.Entry{
				{Uniforms: "M / G"},
			},
			want: map[string]int{"Kit M": 1, "Kit G": 1},
		},
		{
			name: "legacy single label without separator",
			entries: []*models.Entry{
				{Uniforms: "gg"},
			},
			want: map[string]int{"Kit GG": 1},
		},
		{
			name: "legacy string with an empty side",
			entries: []*models.Entry{
				{Uniforms: "P / "},
			},
			want: map[string]int{"Kit P": 1},
		},
		{
			name: "structured kits take precedence over the mirrored legacy string",
			entries: []*models.Entry{
				{
					Athlete1: models.Athlete{Kit: "M"},
					Athlete2: models.Athlete{Kit: "G"},
					Uniforms: "M / G",
				},
			},
			want: map[string]int{"Kit M": 1, "Kit G": 1},
		},
		{
			name: "one structured kit missing",
			entries: []*models.Entry{
				{Athlete1: models.Athlete{Kit: "p feminino"}},
			},
			want: map[string]int{"Kit P Feminino": 1},
		},
		{
			name: "mixed shapes across entries",
			entries: []*models.Entry{
				{Athlete1: models.Athlete{Kit: "M"}, Athlete2: models.Athlete{Kit: "g"}},
				{Uniforms: "m / M"},
				{},
			},
			want: map[string]int{"Kit M": 3, "Kit G": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UniformTotals(tt.entries))
		})
	}
}

func TestUniformSourceOf(t *testing.T) {
	assert.Nil(t, UniformSourceOf(&models.Entry{}))

	assert.Equal(t,
		StructuredKits{Athlete1Kit: "M", Athlete2Kit: ""},
		UniformSourceOf(&models.Entry{Athlete1: models.Athlete{Kit: "M"}, Uniforms: "M / "}),
	)

	assert.Equal(t,
		LegacyCombined{Raw: "M / G"},
		UniformSourceOf(&models.Entry{Uniforms: "M / G"}),
	)
}

func TestSortedTotals(t *testing.T) {
	got := SortedTotals(map[string]int{"Kit P": 1, "Kit G": 4, "Kit M Masculino": 2})

	assert.Equal(t, []LabelCount{
		{Label: "Kit G", Count: 4},
		{Label: "Kit M Masculino", Count: 2},
		{Label: "Kit P", Count: 1},
	}, got)
}
