package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("jane.doe@college.edu"))
	assert.True(t, IsValidEmail("a+b@sub.domain.org"))
	assert.False(t, IsValidEmail("not-an-email"))
	assert.False(t, IsValidEmail("missing@tld"))
	assert.False(t, IsValidEmail("@college.edu"))
	assert.False(t, IsValidEmail(""))
}

func TestIsDateShaped(t *testing.T) {
	assert.True(t, IsDateShaped("2025-12-31"))
	assert.False(t, IsDateShaped("31-12-2025"))
	assert.False(t, IsDateShaped("2025/12/31"))
	assert.False(t, IsDateShaped(""))
}
