package usecase

import (
	"context"

	"walkies/internal/domain/entity"

	"github.com/google/uuid"
)

// StartWalkInput identifies the pet being walked.
type StartWalkInput struct {
	PetID uuid.UUID
}

// UpdateWalkInput carries a fresh route snapshot for an unfinished walk.
type UpdateWalkInput struct {
	Route []entity.RoutePoint
}

// FinishWalkInput carries the final route and optional feedback.
type FinishWalkInput struct {
	Route    []entity.RoutePoint
	Feedback string
}

// WalkHistoryOutput is one page of a user's finalized walks.
type WalkHistoryOutput struct {
	Walks      []*entity.Walk
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// WalkUsecase defines the interface for the walk tracking operations. Every
// operation is scoped to the walking user.
type WalkUsecase interface {
	// StartWalk opens a walk session for one of the user's pets. It fails with
	// a conflict when the user already has an unfinished walk.
	StartWalk(ctx context.Context, userID uuid.UUID, input StartWalkInput) (*entity.Walk, error)

	// UpdateWalk replaces the route snapshot of the user's unfinished walk.
	UpdateWalk(ctx context.Context, userID, walkID uuid.UUID, input UpdateWalkInput) (*entity.Walk, error)

	// FinishWalk finalizes the walk: it computes distance, pace, calories and
	// points, credits the points to the user, and evaluates badge awards.
	FinishWalk(ctx context.Context, userID, walkID uuid.UUID, input FinishWalkInput) (*entity.Walk, []*entity.Badge, error)

	// ActiveWalk retrieves the user's unfinished walk, if any.
	ActiveWalk(ctx context.Context, userID uuid.UUID) (*entity.Walk, error)

	// WalkHistory retrieves a page of the user's finalized walks, newest first.
	WalkHistory(ctx context.Context, userID uuid.UUID, page int) (*WalkHistoryOutput, error)

	// WalkDetails retrieves a single walk owned by the user.
	WalkDetails(ctx context.Context, userID, walkID uuid.UUID) (*entity.Walk, error)
}
