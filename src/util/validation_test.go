package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("user@example.com"))
	assert.True(t, ValidateEmail("first.last+tag@sub.example.co"))

	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.False(t, ValidateEmail("user@localhost"))
	assert.False(t, ValidateEmail("@example.com"))
}

func TestValidateUsername(t *testing.T) {
	assert.True(t, ValidateUsername("bob"))
	assert.True(t, ValidateUsername("a_very_long_but_legal_username"))

	assert.False(t, ValidateUsername("ab"))
	assert.False(t, ValidateUsername("this_username_is_way_too_long_to_pass"))
}

func TestValidatePassword(t *testing.T) {
	assert.True(t, ValidatePassword("Str0ng!pass"))

	assert.False(t, ValidatePassword("Sh0rt!a"))
	assert.False(t, ValidatePassword("alllower1!"))
	assert.False(t, ValidatePassword("ALLUPPER1!"))
	assert.False(t, ValidatePassword("NoDigits!!"))
	assert.False(t, ValidatePassword("NoSpecial1a"))
}
