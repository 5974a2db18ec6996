package database

import "sync"

// ResetForTest clears the process-wide handle so tests can call Init again.
// Production code must not call it.
func ResetForTest() {
	_ = Close(instance)
	instance = nil
	once = sync.Once{}
}
