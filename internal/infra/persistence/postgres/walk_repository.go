package postgres

import (
	"context"
	"encoding/json"
	"time"

	"walkies/internal/domain/entity"
	domainerrors "walkies/internal/domain/errors"
	"walkies/internal/domain/repository"
	"walkies/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// walkRepository implements the repository.WalkRepository interface using GORM.
type walkRepository struct {
	db *gorm.DB
}

// NewWalkRepository is the constructor for walkRepository.
func NewWalkRepository(db *gorm.DB) repository.WalkRepository {
	return &walkRepository{db: db}
}

// FindByID retrieves a single walk by its unique ID.
func (repo *walkRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Walk, error) {
	var walkM model.WalkModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&walkM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWalkNotFound
		}

		return nil, errors.Wrap(err, "failed to find walk by id")
	}

	return toWalkDomain(&walkM)
}

// FindByIDAndUser retrieves a walk only when it belongs to the given user.
func (repo *walkRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*entity.Walk, error) {
	var walkM model.WalkModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&walkM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWalkNotFound
		}

		return nil, errors.Wrap(err, "failed to find walk by id and user")
	}

	return toWalkDomain(&walkM)
}

// FindActiveByUser retrieves the user's unfinished walk, if any.
func (repo *walkRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.Walk, error) {
	var walkM model.WalkModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND end_time IS NULL", userID).
		First(&walkM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrWalkNotFound
		}

		return nil, errors.Wrap(err, "failed to find active walk")
	}

	return toWalkDomain(&walkM)
}

// FindFinishedByUser retrieves finalized walks ordered by creation time
// descending, paginated, along with the total count of finalized walks.
func (repo *walkRepository) FindFinishedByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]*entity.Walk, int64, error) {
	base := repo.db.WithContext(ctx).
		Model(&model.WalkModel{}).
		Where("user_id = ? AND end_time IS NOT NULL", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count finished walks")
	}

	var walkModels []*model.WalkModel
	if err := base.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&walkModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to find finished walks")
	}

	walks, err := toWalkDomainSlice(walkModels)
	if err != nil {
		return nil, 0, err
	}

	return walks, total, nil
}

// FindRecentByUser retrieves the user's most recent walks regardless of state.
func (repo *walkRepository) FindRecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Walk, error) {
	var walkModels []*model.WalkModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&walkModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find recent walks")
	}

	return toWalkDomainSlice(walkModels)
}

// FindStuck retrieves unfinished walks started before the given cutoff.
func (repo *walkRepository) FindStuck(ctx context.Context, cutoff time.Time) ([]*entity.Walk, error) {
	var walkModels []*model.WalkModel

	if err := repo.db.WithContext(ctx).
		Where("end_time IS NULL AND start_time < ?", cutoff).
		Order("start_time ASC").
		Find(&walkModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find stuck walks")
	}

	return toWalkDomainSlice(walkModels)
}

// Create persists a new walk entity to the database. The partial unique index
// on (user_id) WHERE end_time IS NULL rejects a second active walk even under
// concurrent start requests.
func (repo *walkRepository) Create(ctx context.Context, walk *entity.Walk) error {
	walkM, err := fromWalkDomain(walk)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(walkM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrActiveWalkExists
		}
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrWalkNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create walk")
	}

	walk.ID = walkM.ID
	walk.CreatedAt = walkM.CreatedAt

	return nil
}

// Update modifies an existing walk entity in the database. All derived fields
// are written together in one statement so a walk is never partially persisted.
func (repo *walkRepository) Update(ctx context.Context, walk *entity.Walk) error {
	walkM, err := fromWalkDomain(walk)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Save(walkM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update walk")
	}

	return nil
}

// Delete removes a walk.
func (repo *walkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.WalkModel{})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete walk")
	}
	if result.RowsAffected == 0 {
		return repository.ErrWalkNotFound
	}

	return nil
}

// CountByUser returns the number of finalized walks for a user.
func (repo *walkRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.WalkModel{}).
		Where("user_id = ? AND end_time IS NOT NULL", userID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count walks")
	}

	return count, nil
}

// HasWalkOnDay reports whether the user has any walk created on the given calendar day.
func (repo *walkRepository) HasWalkOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.WalkModel{}).
		Where("user_id = ? AND DATE(created_at) = ?", userID, day.Format("2006-01-02")).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check walk on day")
	}

	return count > 0, nil
}

// SumDistanceByUser returns the user's lifetime summed walk distance in meters.
func (repo *walkRepository) SumDistanceByUser(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64

	if err := repo.db.WithContext(ctx).
		Model(&model.WalkModel{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(distance), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum walk distance")
	}

	return total, nil
}

// SumDistanceSince returns the user's summed walk distance for walks created
// at or after the given time.
func (repo *walkRepository) SumDistanceSince(ctx context.Context, userID uuid.UUID, since time.Time) (float64, error) {
	var total float64

	if err := repo.db.WithContext(ctx).
		Model(&model.WalkModel{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Select("COALESCE(SUM(distance), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum walk distance since")
	}

	return total, nil
}

// SumPointsSince returns the user's summed points earned for walks created at
// or after the given time. A nil since means all time.
func (repo *walkRepository) SumPointsSince(ctx context.Context, userID uuid.UUID, since *time.Time) (int, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.WalkModel{}).
		Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var total int
	if err := query.
		Select("COALESCE(SUM(points_earned), 0)").
		Scan(&total).Error; err != nil {
		return 0, errors.Wrap(err, "failed to sum walk points")
	}

	return total, nil
}

// dayStatsRow is the scan target for StatsOnDay.
type dayStatsRow struct {
	Walks    int64
	Distance float64
	Points   int64
}

// StatsOnDay aggregates the user's walk count, distance and points for a single calendar day.
func (repo *walkRepository) StatsOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (*repository.DayStats, error) {
	var row dayStatsRow

	if err := repo.db.WithContext(ctx).
		Model(&model.WalkModel{}).
		Where("user_id = ? AND DATE(created_at) = ?", userID, day.Format("2006-01-02")).
		Select("COUNT(*) AS walks, COALESCE(SUM(distance), 0) AS distance, COALESCE(SUM(points_earned), 0) AS points").
		Scan(&row).Error; err != nil {
		return nil, errors.Wrap(err, "failed to aggregate day stats")
	}

	return &repository.DayStats{
		Walks:    int(row.Walks),
		Distance: row.Distance,
		Points:   int(row.Points),
	}, nil
}

// rankRow is the scan target for the ranking query.
type rankRow struct {
	UserID         uuid.UUID
	Name           string
	ProfilePicture string
	Points         int64
}

// RankUsersByPoints returns users ordered by summed points earned over the
// given period, descending. Ties keep the database's stable order.
func (repo *walkRepository) RankUsersByPoints(ctx context.Context, since *time.Time, limit int) ([]*repository.RankRow, error) {
	query := repo.db.WithContext(ctx).
		Table("walks").
		Select("users.id AS user_id, users.name, users.profile_picture, COALESCE(SUM(walks.points_earned), 0) AS points").
		Joins("JOIN users ON users.id = walks.user_id").
		Where("walks.end_time IS NOT NULL")
	if since != nil {
		query = query.Where("walks.created_at >= ?", *since)
	}

	var rows []rankRow
	if err := query.
		Group("users.id, users.name, users.profile_picture").
		Order("points DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to rank users by points")
	}

	ranked := make([]*repository.RankRow, 0, len(rows))
	for _, row := range rows {
		ranked = append(ranked, &repository.RankRow{
			UserID:         row.UserID,
			Name:           row.Name,
			ProfilePicture: row.ProfilePicture,
			Points:         int(row.Points),
		})
	}

	return ranked, nil
}

// CountUsersWithMorePoints returns how many users earned strictly more points
// than the given amount over the period.
func (repo *walkRepository) CountUsersWithMorePoints(ctx context.Context, points int, since *time.Time) (int64, error) {
	sub := repo.db.
		Table("walks").
		Select("user_id").
		Where("end_time IS NOT NULL")
	if since != nil {
		sub = sub.Where("created_at >= ?", *since)
	}
	sub = sub.Group("user_id").Having("COALESCE(SUM(points_earned), 0) > ?", points)

	var count int64
	if err := repo.db.WithContext(ctx).
		Table("(?) AS ranked", sub).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count users with more points")
	}

	return count, nil
}

// --- Mapper Functions ---

// toWalkDomain converts a GORM WalkModel to a domain Walk entity,
// deserializing the stored route.
func toWalkDomain(data *model.WalkModel) (*entity.Walk, error) {
	if data == nil {
		return nil, nil
	}

	var route []entity.RoutePoint
	if data.RouteData != "" {
		if err := json.Unmarshal([]byte(data.RouteData), &route); err != nil {
			return nil, errors.Wrap(err, "failed to decode route data")
		}
	}

	return &entity.Walk{
		ID:           data.ID,
		StartTime:    data.StartTime,
		EndTime:      data.EndTime,
		Duration:     data.Duration,
		Distance:     data.Distance,
		Calories:     data.Calories,
		AveragePace:  data.AveragePace,
		Route:        route,
		Feedback:     data.Feedback,
		PointsEarned: data.PointsEarned,
		UserID:       data.UserID,
		PetID:        data.PetID,
		CreatedAt:    data.CreatedAt,
	}, nil
}

func toWalkDomainSlice(data []*model.WalkModel) ([]*entity.Walk, error) {
	walks := make([]*entity.Walk, 0, len(data))
	for _, walkM := range data {
		walk, err := toWalkDomain(walkM)
		if err != nil {
			return nil, err
		}
		walks = append(walks, walk)
	}

	return walks, nil
}

// fromWalkDomain converts a domain Walk entity into a GORM WalkModel,
// serializing the route as a JSON array.
func fromWalkDomain(data *entity.Walk) (*model.WalkModel, error) {
	if data == nil {
		return nil, nil
	}

	routeData := ""
	if len(data.Route) > 0 {
		encoded, err := json.Marshal(data.Route)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode route data")
		}
		routeData = string(encoded)
	}

	return &model.WalkModel{
		ID:           data.ID,
		StartTime:    data.StartTime,
		EndTime:      data.EndTime,
		Duration:     data.Duration,
		Distance:     data.Distance,
		Calories:     data.Calories,
		AveragePace:  data.AveragePace,
		RouteData:    routeData,
		Feedback:     data.Feedback,
		PointsEarned: data.PointsEarned,
		UserID:       data.UserID,
		PetID:        data.PetID,
		CreatedAt:    data.CreatedAt,
	}, nil
}
