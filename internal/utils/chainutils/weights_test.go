package chainutils

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertWeightsAndUidsForEmit(t *testing.T) {
	uids := []int64{0, 1, 2, 3}
	weights := []float64{0.0, 0.25, 0.5, 1.0}

	emitUids, emitWeights, err := ConvertWeightsAndUidsForEmit(uids, weights)
	require.NoError(t, err)

	// uid 0 carries zero weight and is dropped.
	assert.Equal(t, []int{1, 2, 3}, emitUids)
	assert.Equal(t, []int{16384, 32768, 65535}, emitWeights)
}

func TestConvertWeightsAndUidsForEmit_AllZero(t *testing.T) {
	emitUids, emitWeights, err := ConvertWeightsAndUidsForEmit([]int64{0, 1}, []float64{0, 0})
	require.NoError(t, err)
	assert.Empty(t, emitUids)
	assert.Empty(t, emitWeights)
}

func TestConvertWeightsAndUidsForEmit_LengthMismatch(t *testing.T) {
	_, _, err := ConvertWeightsAndUidsForEmit([]int64{0}, []float64{0.5, 0.5})
	assert.Error(t, err)
}

func TestConvertWeightsAndUidsForEmit_NegativeWeight(t *testing.T) {
	_, _, err := ConvertWeightsAndUidsForEmit([]int64{0, 1}, []float64{0.5, -0.1})
	assert.Error(t, err)
}

func TestClampNegativeWeights(t *testing.T) {
	weights := []float64{0.5, -0.2, 0, -1}
	clamped := ClampNegativeWeights(weights)
	assert.Equal(t, []float64{0.5, 0, 0, 0}, clamped)
}

func TestIPv4ToInt(t *testing.T) {
	val, err := IPv4ToInt(net.ParseIP("1.2.3.4"))
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), val)

	_, err = IPv4ToInt(net.ParseIP("::1"))
	assert.Error(t, err)
}
