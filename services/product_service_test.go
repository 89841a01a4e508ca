package services

import (
	"ouardatie_server/structs"
	"ouardatie_server/structs/tables"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFilterSet(t *testing.T) {
	assert.False(t, isFilterSet(""))
	assert.False(t, isFilterSet("all"))
	assert.True(t, isFilterSet("M"))
	assert.True(t, isFilterSet("noir"))
}

func TestHasSize(t *testing.T) {
	p := &tables.Product{AvailableSizes: []string{"S", "M", "L"}}

	assert.True(t, hasSize(p, "M"))
	assert.True(t, hasSize(p, "m"), "size match is case insensitive")
	assert.False(t, hasSize(p, "XL"))
	assert.False(t, hasSize(&tables.Product{}, "M"))
}

func TestHasColor(t *testing.T) {
	p := &tables.Product{
		Colors: structs.ColorList{
			{Name: "Noir", Hex: "#000"},
			{Name: "blanc", Hex: "#fff"},
		},
	}

	assert.True(t, hasColor(p, "noir"), "color match is case insensitive")
	assert.True(t, hasColor(p, "BLANC"))
	assert.False(t, hasColor(p, "rouge"))
}
