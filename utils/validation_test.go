package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMobile(t *testing.T) {
	assert.True(t, ValidateMobile("9876543210"))
	assert.False(t, ValidateMobile("987654321"), "too short")
	assert.False(t, ValidateMobile("98765432101"), "too long")
	assert.False(t, ValidateMobile("98765 43210"), "whitespace")
	assert.False(t, ValidateMobile("+919876543210"), "country code")
	assert.False(t, ValidateMobile(""))
}
