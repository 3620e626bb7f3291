package postgres

import (
	"context"

	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// badgeRepository implements the repository.BadgeRepository interface using GORM.
type badgeRepository struct {
	db *gorm.DB
}

// NewBadgeRepository is the constructor for badgeRepository.
func NewBadgeRepository(db *gorm.DB) repository.BadgeRepository {
	return &badgeRepository{db: db}
}

// ListBadges retrieves every badge definition.
func (repo *badgeRepository) ListBadges(ctx context.Context) ([]*entity.Badge, error) {
	var badgeModels []*model.BadgeModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&badgeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list badges")
	}

	badges := make([]*entity.Badge, 0, len(badgeModels))
	for _, badgeM := range badgeModels {
		badges = append(badges, toBadgeDomain(badgeM))
	}

	return badges, nil
}

// FindBadgeByName retrieves a badge definition by its unique name.
func (repo *badgeRepository) FindBadgeByName(ctx context.Context, name string) (*entity.Badge, error) {
	var badgeM model.BadgeModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&badgeM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBadgeNotFound
		}

		return nil, errors.Wrap(err, "failed to find badge by name")
	}

	return toBadgeDomain(&badgeM), nil
}

// FindBadgesByCondition retrieves all badges of a given condition type.
func (repo *badgeRepository) FindBadgesByCondition(ctx context.Context, condition entity.BadgeCondition) ([]*entity.Badge, error) {
	var badgeModels []*model.BadgeModel

	if err := repo.db.WithContext(ctx).
		Where("condition_type = ?", condition.String()).
		Order("condition_value ASC").
		Find(&badgeModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find badges by condition")
	}

	badges := make([]*entity.Badge, 0, len(badgeModels))
	for _, badgeM := range badgeModels {
		badges = append(badges, toBadgeDomain(badgeM))
	}

	return badges, nil
}

// CreateBadge persists a new badge definition. Used only by seeding.
func (repo *badgeRepository) CreateBadge(ctx context.Context, badge *entity.Badge) error {
	badgeM := fromBadgeDomain(badge)

	if err := repo.db.WithContext(ctx).Create(badgeM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrBadgeAlreadyAwarded.WrapMessage("badge name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create badge")
	}

	badge.ID = badgeM.ID
	badge.CreatedAt = badgeM.CreatedAt

	return nil
}

// FindAwardsByUser retrieves a user's earned badges ordered by award time
// descending, with the badge definition preloaded.
func (repo *badgeRepository) FindAwardsByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserBadge, error) {
	var awardModels []*model.UserBadgeModel

	if err := repo.db.WithContext(ctx).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").
		Find(&awardModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find awards by user")
	}

	awards := make([]*entity.UserBadge, 0, len(awardModels))
	for _, awardM := range awardModels {
		awards = append(awards, toUserBadgeDomain(awardM))
	}

	return awards, nil
}

// HasAward reports whether the user already holds the given badge.
func (repo *badgeRepository) HasAward(ctx context.Context, userID, badgeID uuid.UUID) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.UserBadgeModel{}).
		Where("user_id = ? AND badge_id = ?", userID, badgeID).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check badge award")
	}

	return count > 0, nil
}

// CreateAward records that a user earned a badge. The unique index on
// (user_id, badge_id) rejects double awards under concurrency.
func (repo *badgeRepository) CreateAward(ctx context.Context, award *entity.UserBadge) error {
	awardM := fromUserBadgeDomain(award)

	if err := repo.db.WithContext(ctx).Create(awardM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateAward
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrBadgeNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create badge award")
	}

	award.ID = awardM.ID
	award.EarnedAt = awardM.EarnedAt

	return nil
}

// --- Mapper Functions ---

func toBadgeDomain(data *model.BadgeModel) *entity.Badge {
	if data == nil {
		return nil
	}

	return &entity.Badge{
		ID:             data.ID,
		Name:           data.Name,
		Description:    data.Description,
		Icon:           data.Icon,
		PointsRequired: data.PointsRequired,
		ConditionType:  entity.BadgeCondition(data.ConditionType),
		ConditionValue: data.ConditionValue,
		CreatedAt:      data.CreatedAt,
	}
}

func fromBadgeDomain(data *entity.Badge) *model.BadgeModel {
	if data == nil {
		return nil
	}

	return &model.BadgeModel{
		ID:             data.ID,
		Name:           data.Name,
		Description:    data.Description,
		Icon:           data.Icon,
		PointsRequired: data.PointsRequired,
		ConditionType:  data.ConditionType.String(),
		ConditionValue: data.ConditionValue,
	}
}

func toUserBadgeDomain(data *model.UserBadgeModel) *entity.UserBadge {
	if data == nil {
		return nil
	}

	return &entity.UserBadge{
		ID:       data.ID,
		UserID:   data.UserID,
		BadgeID:  data.BadgeID,
		EarnedAt: data.EarnedAt,
		Badge:    toBadgeDomain(data.Badge),
	}
}

func fromUserBadgeDomain(data *entity.UserBadge) *model.UserBadgeModel {
	if data == nil {
		return nil
	}

	return &model.UserBadgeModel{
		ID:       data.ID,
		UserID:   data.UserID,
		BadgeID:  data.BadgeID,
		EarnedAt: data.EarnedAt,
	}
}
