package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Béjaïa", "bejaia"},
		{"Bejaia", "bejaia"},
		{"  Alger Centre  ", "alger centre"},
		{"TIZI OUZOU", "tizi ouzou"},
		{"Aïn Défla", "ain defla"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.input), "input %q", tt.input)
	}
}

func TestNamesMatch(t *testing.T) {
	assert.True(t, NamesMatch("Béjaïa", "bejaia"))
	assert.True(t, NamesMatch("Aïn Témouchent", "AIN TEMOUCHENT"))
	assert.False(t, NamesMatch("Oran", "Alger"))
}
