package numberutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloatWithError(t *testing.T) {
	value, err := ToFloatWithError(" 51.5074 ")
	assert.NoError(t, err)
	assert.Equal(t, 51.5074, value)

	_, err = ToFloatWithError("NaN")
	assert.Error(t, err)

	_, err = ToFloatWithError("north")
	assert.Error(t, err)

	assert.False(t, IsFloat("+Inf"))
	assert.True(t, IsFloat("-0.1278"))
}

func TestToFloatWithDefault(t *testing.T) {
	assert.Equal(t, -0.1278, ToFloatWithDefault("", -0.1278))
	assert.Equal(t, 2.5, ToFloatWithDefault("2.5", 0))
}

func TestRoundClampAndRange(t *testing.T) {
	assert.Equal(t, 51.5074, Round(51.50736, 4))
	assert.Equal(t, -0.13, Round(-0.1278, 2))
	assert.Equal(t, 1.0, Clamp(1.4, 0, 1))
	assert.Equal(t, 0.0, Clamp(-0.2, 0, 1))
	assert.True(t, InRange(-90, -90, 90))
	assert.False(t, InRange(180.5, -180, 180))
}
