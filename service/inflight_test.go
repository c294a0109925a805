package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInFlightGuard(t *testing.T) {
	g := NewInFlightGuard()

	assert.True(t, g.Acquire("1"))
	assert.False(t, g.Acquire("1"))
	assert.True(t, g.Acquire("2"), "other forms are independent")

	g.Release("1")
	assert.True(t, g.Acquire("1"))

	g.Release("unknown")
}
