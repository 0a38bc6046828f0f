package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Porto Meira", "porto meira"},
		{"strips diacritics", "Maracanã", "maracana"},
		{"accented and plain forms collide", "São João", "sao joao"},
		{"trims and collapses whitespace", "  Vila   A ", "vila a"},
		{"empty stays empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestNormalizedNeighborhoodIndex(t *testing.T) {
	index := NormalizedNeighborhoodIndex()

	region, ok := index[NormalizeName("MARACANÃ")]
	require.True(t, ok)
	assert.Equal(t, "R02", region.Code)

	_, ok = index[NormalizeName("Bairro Inexistente")]
	assert.False(t, ok)
}
