package monitor

import "time"

// Status is the last observed state of every probed dependency.
type Status struct {
	Services  map[string]bool `json:"services"`
	LastCheck time.Time       `json:"last_check"`
}

// Healthy reports whether every probed dependency answered its last ping.
// A status that was never refreshed is not healthy.
func (s Status) Healthy() bool {
	if s.LastCheck.IsZero() {
		return false
	}
	for _, ok := range s.Services {
		if !ok {
			return false
		}
	}
	return true
}
