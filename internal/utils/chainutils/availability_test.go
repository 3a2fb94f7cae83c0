package chainutils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eastworld-ai/eastworld/internal/kami"
)

func testMetagraph() *kami.SubnetMetagraph {
	return &kami.SubnetMetagraph{
		Hotkeys:  []string{"hk0", "hk1", "hk2", "hk3"},
		Coldkeys: []string{"ck0", "ck1", "ck2", "ck3"},
		Axons: []kami.AxonInfo{
			{IP: "10.0.0.1", Port: 8091},
			{IP: "0.0.0.0", Port: 0},
			{IP: "10.0.0.3", Port: 8091},
			{IP: "10.0.0.4", Port: 8091},
		},
		ValidatorPermit: []bool{false, false, true, true},
		TotalStake:      []float64{100, 100, 50000, 1000},
	}
}

func TestCheckUIDAvailability(t *testing.T) {
	mg := testMetagraph()
	limit := 4096.0

	assert.True(t, CheckUIDAvailability(mg, 0, limit), "serving miner should be available")
	assert.False(t, CheckUIDAvailability(mg, 1, limit), "non-serving axon should be unavailable")
	assert.False(t, CheckUIDAvailability(mg, 2, limit), "staked validator should be excluded")
	assert.True(t, CheckUIDAvailability(mg, 3, limit), "permit holder under stake limit stays available")
	assert.False(t, CheckUIDAvailability(mg, -1, limit))
	assert.False(t, CheckUIDAvailability(mg, 4, limit))
}

func TestFindUIDForHotkey(t *testing.T) {
	mg := testMetagraph()
	assert.Equal(t, 2, FindUIDForHotkey(mg, "hk2"))
	assert.Equal(t, -1, FindUIDForHotkey(mg, "unknown"))
}

func TestGetColdkeyForHotkey(t *testing.T) {
	mg := testMetagraph()
	assert.Equal(t, "ck1", GetColdkeyForHotkey(mg, "hk1"))
	assert.Equal(t, "", GetColdkeyForHotkey(mg, "unknown"))
}
