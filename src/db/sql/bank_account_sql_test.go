package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCentsFromFloat(t *testing.T) {
	assert.Equal(t, int64(29), centsFromFloat(0.29))
	assert.Equal(t, int64(1099), centsFromFloat(10.99))
	assert.Equal(t, int64(110), centsFromFloat(1.10))
	assert.Equal(t, int64(0), centsFromFloat(0))
	assert.Equal(t, int64(-525), centsFromFloat(-5.25))
	assert.Equal(t, int64(250025), centsFromFloat(2500.25))
}
