package utils

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNan(t *testing.T) {
	assert.False(t, IsNan(1.))
	assert.True(t, IsNan(math.NaN()))
	assert.False(t, IsNan([]float64{1, 2, 3}))
	assert.True(t, IsNan([]float64{1, math.NaN(), 3}))
	assert.True(t, IsNan([][]float64{{1}, {2, math.NaN()}}))
	assert.False(t, IsNan("not a number type"))
	assert.True(t, strings.HasPrefix(GetMemUsage(), "Alloc = "))
}
