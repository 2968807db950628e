package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductFromRecord(t *testing.T) {
	p := ProductFromRecord("-NqA1", map[string]any{
		"name":     "Mouse Gamer",
		"category": "Periféricos",
		"photo":    "https://cdn.example.com/mouse.png",
		"link":     "https://amzn.to/xyz",
	})

	assert.Equal(t, "-NqA1", p.ID)
	assert.Equal(t, "Mouse Gamer", p.Name)
	assert.Equal(t, "Periféricos", p.Category)
	assert.True(t, p.HasLink())
	assert.False(t, p.HasVideo())
	assert.Empty(t, p.Description)
}

func TestProductFromRecordNormalizesMissingAndOddFields(t *testing.T) {
	p := ProductFromRecord("p2", map[string]any{
		"name":     nil,
		"category": 42,
		"photo":    map[string]any{"url": "x"},
		"video":    "  ",
	})

	assert.Equal(t, "", p.Name)
	assert.Equal(t, "42", p.Category)
	assert.Equal(t, "", p.Photo)
	assert.False(t, p.HasVideo())
}

func TestProductFromNilRecord(t *testing.T) {
	p := ProductFromRecord("p3", nil)
	assert.Equal(t, Product{ID: "p3"}, p)
}
