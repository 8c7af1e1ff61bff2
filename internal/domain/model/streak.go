package model

import "time"

// StreakRecord tracks consecutive check-ins for a customer. It shares
// the customer key with Customer but lives in its own table.
type StreakRecord struct {
	CustomerID string
	Days       int
	LastDay    time.Time
	UpdatedAt  time.Time
}

// StreakAdvance is the outcome of advancing a streak by one check-in.
// CrossedTwo and CrossedFive report whether this advance moved the
// streak over the corresponding reward threshold.
type StreakAdvance struct {
	Days        int
	CrossedTwo  bool
	CrossedFive bool
}
