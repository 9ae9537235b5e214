package domain

import "time"

// ScanStats holds statistics from a tree scan
type ScanStats struct {
	Folders  int
	Notes    int
	Skipped  int // unreadable or malformed notes left out of the listing
	Duration time.Duration
}

// Entries returns the number of entries the scan produced
func (s *ScanStats) Entries() int {
	return s.Folders + s.Notes
}
