package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidShopUsername(t *testing.T) {
	valid := []string{"brewlab", "brew_lab", "brew.lab", "cafe1234", "abcd"}
	for _, username := range valid {
		assert.True(t, IsValidShopUsername(username), username)
	}

	invalid := []string{
		"abc",                              // too short
		strings.Repeat("a", 31),            // too long
		"BrewLab",                          // uppercase
		"brew lab",                         // space
		"brew-lab",                         // dash
		"brew/lab",                         // slash
	}
	for _, username := range invalid {
		assert.False(t, IsValidShopUsername(username), username)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM "))
}

func TestGenerateStampCodeShape(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	code := GenerateStampCode("ana@example.com", issuedAt)

	parts := strings.Split(code, "-")
	assert.GreaterOrEqual(t, len(parts), 3)
	assert.Equal(t, "ana", parts[0])
	assert.Len(t, parts[len(parts)-1], 4)

	// Random suffix makes simultaneous codes distinct.
	other := GenerateStampCode("ana@example.com", issuedAt)
	assert.NotEqual(t, code, other)
}
