package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	masked := MaskEmail("alice@example.com")
	assert.True(t, strings.HasSuffix(masked, "@example.com"), "domain must survive masking: %s", masked)
	assert.NotEqual(t, "alice@example.com", masked)
	assert.Contains(t, masked, "*")
}

func TestMaskEmail_ShortLocalPart(t *testing.T) {
	masked := MaskEmail("ab@example.com")
	assert.True(t, strings.HasSuffix(masked, "@example.com"))
	assert.Equal(t, "a*@example.com", masked)
}

func TestMaskEmail_EmptyInput(t *testing.T) {
	assert.Equal(t, "", MaskEmail(""))
}

func TestMaskEmail_NotAnAddress(t *testing.T) {
	masked := MaskEmail("nodomain")
	assert.Equal(t, strings.Repeat("*", len("nodomain")), masked)
}

func TestMaskPhone(t *testing.T) {
	masked := MaskPhone("+15551234567")
	assert.True(t, strings.HasPrefix(masked, "+15"))
	assert.True(t, strings.HasSuffix(masked, "567"))
	assert.Equal(t, len("+15551234567"), len(masked))
	assert.Contains(t, masked, "*")
}

func TestMaskPhone_ShortInput(t *testing.T) {
	assert.Equal(t, "****", MaskPhone("1234"))
	assert.Equal(t, "", MaskPhone(""))
}

func TestMaskAddress(t *testing.T) {
	masked := MaskAddress("12 Main Street")
	assert.Equal(t, len("12 Main Street"), len(masked))
	assert.True(t, strings.HasPrefix(masked, "*"))
	assert.True(t, strings.HasSuffix(masked, "Street"))
}

func TestMaskAddress_EmptyInput(t *testing.T) {
	assert.Equal(t, "", MaskAddress(""))
}
