package model

import "time"

// Customer represents a stamp card holder keyed by the messaging
// channel sender identifier.
type Customer struct {
	ID          string
	Visits      int
	LastVisitAt time.Time
}
