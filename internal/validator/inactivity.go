package validator

import "time"

// Inactive miners are skipped for a growing window: 60s on the first failed
// turn, then 180s more per consecutive failure, capped at 30 minutes. Only
// test and local networks track this; mainnet miners are scored by the
// coordination server instead.
const (
	inactivityBase = 60 * time.Second
	inactivityStep = 180 * time.Second
	inactivityCap  = 1800 * time.Second
)

func (v *Validator) trackingInactivity() bool {
	network := v.Config.SubtensorNetwork
	return network == "test" || network == "local"
}

// skipInactive reports whether uid is still inside its skip window.
func (v *Validator) skipInactive(uid int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.inactive[uid]
	return ok && s.NotUntil.After(time.Now())
}

// markInactive extends the skip window for uid and returns the interval the
// miner will be skipped for.
func (v *Validator) markInactive(uid int) time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()

	s, ok := v.inactive[uid]
	if !ok {
		s = inactivityState{Interval: inactivityBase}
	} else {
		s.Interval += inactivityStep
		if s.Interval > inactivityCap {
			s.Interval = inactivityCap
		}
	}
	s.NotUntil = time.Now().Add(s.Interval)
	v.inactive[uid] = s
	return s.Interval
}

// clearInactive drops the skip window for uid after a successful turn.
func (v *Validator) clearInactive(uid int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.inactive, uid)
}
