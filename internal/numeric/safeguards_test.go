package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloor(t *testing.T) {
	assert.Equal(t, 5.0, Floor(5))
	assert.Equal(t, Epsilon, Floor(0))
	assert.Equal(t, Epsilon, Floor(-3))
	assert.Equal(t, Epsilon, Floor(Epsilon/2))
}

func TestFloorAbove(t *testing.T) {
	assert.Equal(t, 5.0, FloorAbove(10, 5))
	assert.Equal(t, Epsilon, FloorAbove(5, 5), "at the boundary the surplus floors to epsilon")
	assert.Equal(t, Epsilon, FloorAbove(2, 5))
}

func TestClampLog_KeepsExpFinite(t *testing.T) {
	assert.Equal(t, LogCap, ClampLog(1e6))
	assert.Equal(t, -LogCap, ClampLog(-1e6))
	assert.Equal(t, 3.5, ClampLog(3.5))

	assert.False(t, math.IsInf(math.Exp(ClampLog(1e6)), 0))
}

func TestNearZero(t *testing.T) {
	assert.True(t, NearZero(0))
	assert.True(t, NearZero(Epsilon/2))
	assert.True(t, NearZero(-Epsilon/2))
	assert.False(t, NearZero(1e-8))
}
