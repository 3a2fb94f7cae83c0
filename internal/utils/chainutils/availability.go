package chainutils

import "github.com/eastworld-ai/eastworld/internal/kami"

// CheckUIDAvailability reports whether a uid is a queryable miner: it must
// be within the metagraph, have a serving axon, and must not be a staked
// validator above the vpermit tao limit.
func CheckUIDAvailability(metagraph *kami.SubnetMetagraph, uid int, vpermitTaoLimit float64) bool {
	if uid < 0 || uid >= len(metagraph.Axons) {
		return false
	}
	if !metagraph.Axons[uid].IsServing() {
		return false
	}
	if uid < len(metagraph.ValidatorPermit) && metagraph.ValidatorPermit[uid] {
		if uid < len(metagraph.TotalStake) && metagraph.TotalStake[uid] > vpermitTaoLimit {
			return false
		}
	}
	return true
}

// FindUIDForHotkey returns the uid registered to hotkey, or -1 if the
// hotkey is not in the metagraph.
func FindUIDForHotkey(metagraph *kami.SubnetMetagraph, hotkey string) int {
	for uid, h := range metagraph.Hotkeys {
		if h == hotkey {
			return uid
		}
	}
	return -1
}

// GetColdkeyForHotkey returns the coldkey paired with hotkey, or "" when
// the hotkey is not registered.
func GetColdkeyForHotkey(metagraph *kami.SubnetMetagraph, hotkey string) string {
	uid := FindUIDForHotkey(metagraph, hotkey)
	if uid < 0 || uid >= len(metagraph.Coldkeys) {
		return ""
	}
	return metagraph.Coldkeys[uid]
}
