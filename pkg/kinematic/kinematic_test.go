package kinematic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector_Add(t *testing.T) {
	got := Vector{X: 1.5, Y: -2}.Add(Vector{X: 0.25, Y: 3})
	assert.Equal(t, Vector{X: 1.75, Y: 1}, got)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, Clamp(11, 0, 10))
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
}
