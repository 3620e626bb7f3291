package handler

import (
	"time"

	"walkies/internal/domain/entity"
	"walkies/internal/usecase"

	"github.com/google/uuid"
)

// View structs shape what leaves the API. Entities never serialize directly;
// in particular the user's password hash stays server-side.

type userView struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	TotalPoints    int       `json:"total_points"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

func toUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		ProfilePicture: user.ProfilePicture,
		TotalPoints:    user.TotalPoints,
		Role:           user.Role.String(),
		CreatedAt:      user.CreatedAt,
	}
}

func toUserViews(users []*entity.User) []*userView {
	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

type authView struct {
	Token string    `json:"token"`
	User  *userView `json:"user"`
}

type petView struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Breed          string    `json:"breed,omitempty"`
	Age            int       `json:"age,omitempty"`
	Weight         float64   `json:"weight,omitempty"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Preferences    string    `json:"preferences,omitempty"`
	OwnerID        uuid.UUID `json:"owner_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func toPetView(pet *entity.Pet) *petView {
	if pet == nil {
		return nil
	}

	return &petView{
		ID:             pet.ID,
		Name:           pet.Name,
		Breed:          pet.Breed,
		Age:            pet.Age,
		Weight:         pet.Weight,
		ProfilePicture: pet.ProfilePicture,
		Preferences:    pet.Preferences,
		OwnerID:        pet.OwnerID,
		CreatedAt:      pet.CreatedAt,
	}
}

func toPetViews(pets []*entity.Pet) []*petView {
	views := make([]*petView, 0, len(pets))
	for _, pet := range pets {
		views = append(views, toPetView(pet))
	}

	return views
}

type walkView struct {
	ID           uuid.UUID           `json:"id"`
	StartTime    time.Time           `json:"start_time"`
	EndTime      *time.Time          `json:"end_time,omitempty"`
	Duration     int                 `json:"duration"`
	Distance     float64             `json:"distance"`
	Calories     int                 `json:"calories"`
	AveragePace  float64             `json:"average_pace"`
	Route        []entity.RoutePoint `json:"route,omitempty"`
	Feedback     string              `json:"feedback,omitempty"`
	PointsEarned int                 `json:"points_earned"`
	UserID       uuid.UUID           `json:"user_id"`
	PetID        uuid.UUID           `json:"pet_id"`
	CreatedAt    time.Time           `json:"created_at"`
}

func toWalkView(walk *entity.Walk) *walkView {
	if walk == nil {
		return nil
	}

	return &walkView{
		ID:           walk.ID,
		StartTime:    walk.StartTime,
		EndTime:      walk.EndTime,
		Duration:     walk.Duration,
		Distance:     walk.Distance,
		Calories:     walk.Calories,
		AveragePace:  walk.AveragePace,
		Route:        walk.Route,
		Feedback:     walk.Feedback,
		PointsEarned: walk.PointsEarned,
		UserID:       walk.UserID,
		PetID:        walk.PetID,
		CreatedAt:    walk.CreatedAt,
	}
}

func toWalkViews(walks []*entity.Walk) []*walkView {
	views := make([]*walkView, 0, len(walks))
	for _, walk := range walks {
		views = append(views, toWalkView(walk))
	}

	return views
}

type badgeView struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Icon           string     `json:"icon,omitempty"`
	PointsRequired int        `json:"points_required"`
	ConditionType  string     `json:"condition_type"`
	ConditionValue int        `json:"condition_value"`
	Earned         bool       `json:"earned"`
	EarnedAt       *time.Time `json:"earned_at,omitempty"`
}

func toBadgeView(badge *entity.Badge) *badgeView {
	if badge == nil {
		return nil
	}

	return &badgeView{
		ID:             badge.ID,
		Name:           badge.Name,
		Description:    badge.Description,
		Icon:           badge.Icon,
		PointsRequired: badge.PointsRequired,
		ConditionType:  badge.ConditionType.String(),
		ConditionValue: badge.ConditionValue,
	}
}

func toBadgeStatusViews(badges []usecase.BadgeWithStatus) []*badgeView {
	views := make([]*badgeView, 0, len(badges))
	for _, status := range badges {
		view := toBadgeView(status.Badge)
		view.Earned = status.Earned
		view.EarnedAt = status.EarnedAt
		views = append(views, view)
	}

	return views
}

func toBadgeViews(badges []*entity.Badge) []*badgeView {
	views := make([]*badgeView, 0, len(badges))
	for _, badge := range badges {
		views = append(views, toBadgeView(badge))
	}

	return views
}

type userBadgeView struct {
	ID       uuid.UUID  `json:"id"`
	BadgeID  uuid.UUID  `json:"badge_id"`
	EarnedAt time.Time  `json:"earned_at"`
	Badge    *badgeView `json:"badge,omitempty"`
}

func toUserBadgeViews(awards []*entity.UserBadge) []*userBadgeView {
	views := make([]*userBadgeView, 0, len(awards))
	for _, award := range awards {
		views = append(views, &userBadgeView{
			ID:       award.ID,
			BadgeID:  award.BadgeID,
			EarnedAt: award.EarnedAt,
			Badge:    toBadgeView(award.Badge),
		})
	}

	return views
}

type rankingEntryView struct {
	Position       int       `json:"position"`
	UserID         uuid.UUID `json:"user_id"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	Points         int       `json:"points"`
	IsCurrentUser  bool      `json:"is_current_user"`
}

func toRankingEntryViews(entries []usecase.RankingEntry) []rankingEntryView {
	views := make([]rankingEntryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, rankingEntryView(entry))
	}

	return views
}

type challengeView struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Target       int    `json:"target"`
	Progress     int    `json:"progress"`
	RewardPoints int    `json:"reward_points"`
	Completed    bool   `json:"completed"`
}

func toChallengeViews(challenges []usecase.Challenge) []challengeView {
	views := make([]challengeView, 0, len(challenges))
	for _, challenge := range challenges {
		views = append(views, challengeView(challenge))
	}

	return views
}
