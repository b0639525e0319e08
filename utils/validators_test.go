// File: /utils/validators_test.go
package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jean.dupont@example.fr"))
	assert.False(t, IsValidEmail("jean.dupont"))
	assert.False(t, IsValidEmail("@example.fr"))
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"mixed case with number", "Secret12", true},
		{"too short", "Ab1", false},
		{"single character class", "lowercaseonly", false},
		{"lower with number and symbol", "secret1!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPassword(tt.password))
		})
	}
}

func TestIsValidDistance(t *testing.T) {
	assert.True(t, IsValidDistance(decimal.Zero))
	assert.True(t, IsValidDistance(decimal.NewFromInt(10000)))
	assert.False(t, IsValidDistance(decimal.NewFromInt(10001)))
	assert.False(t, IsValidDistance(decimal.NewFromInt(-1)))
}

func TestIsValidRate(t *testing.T) {
	assert.True(t, IsValidRate(decimal.NewFromFloat(0.52)))
	assert.False(t, IsValidRate(decimal.NewFromInt(101)))
	assert.False(t, IsValidRate(decimal.NewFromFloat(-0.1)))
}
