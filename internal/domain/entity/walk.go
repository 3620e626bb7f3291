// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoutePoint is a single GPS sample on a walk's route. Ordering is implicit
// in the slice position; the sequence is persisted as a serialized array on
// the walk record, not as standalone rows.
type RoutePoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Walk represents one tracked walking session for a user and one of their
// pets. A walk with a nil EndTime is "active"; at most one active walk may
// exist per user at any time. Derived fields (Duration, Distance, Calories,
// AveragePace, PointsEarned) are written exactly once when the walk is
// finalized and never mutated afterwards.
type Walk struct {
	ID           uuid.UUID    // The unique identifier for the walk.
	StartTime    time.Time    // When the walk was started.
	EndTime      *time.Time   // When the walk was finalized; nil while in progress.
	Duration     int          // Whole seconds between start and end; zero while active.
	Distance     float64      // Total route distance in meters.
	Calories     int          // Estimated kilocalories burned.
	AveragePace  float64      // Minutes per kilometer; zero when distance or duration is zero.
	Route        []RoutePoint // Ordered GPS samples collected during the walk.
	Feedback     string       // Optional free-text feedback supplied on finish.
	PointsEarned int          // Points awarded for this walk; zero until finalized.
	UserID       uuid.UUID    // Links this walk to the owning User.
	PetID        uuid.UUID    // Links this walk to the Pet that was walked.
	CreatedAt    time.Time    // Timestamp of when this record was created.
}

// IsFinished reports whether the walk has been finalized.
func (w *Walk) IsFinished() bool {
	return w.EndTime != nil
}
