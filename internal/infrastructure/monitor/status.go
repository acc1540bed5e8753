package monitor

import "time"

// Status is the last observed reachability of every watched store.
type Status struct {
	Stores    map[string]bool `json:"stores"`
	LastCheck time.Time       `json:"last_check"`
}

// Online reports whether every store answered the last check.
func (s Status) Online() bool {
	if len(s.Stores) == 0 {
		return false
	}
	for _, ok := range s.Stores {
		if !ok {
			return false
		}
	}
	return true
}
