package repository

import (
	"time"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreRatingEntry is one rating joined with the rater's identity.
type StoreRatingEntry struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type RatingRepository interface {
	Upsert(rating *model.Rating) error
	FindByUserAndStore(userID, storeID uint) (*model.Rating, error)
	ListForStore(storeID uint) ([]StoreRatingEntry, error)
	AverageForStore(storeID uint) (float64, error)
	Count() (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts the rating, or on a (user_id, store_id) conflict
// overwrites the value and refreshes updated_at. The single statement
// is the only guard against duplicate-rating races; no read precedes
// the write.
func (r *ratingRepository) Upsert(rating *model.Rating) error {
	logger.Debug("Upserting rating", map[string]interface{}{
		"user_id":  rating.UserID,
		"store_id": rating.StoreID,
		"rating":   rating.Rating,
	})

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating":     rating.Rating,
			"updated_at": time.Now(),
		}),
	}).Create(rating).Error
	if err != nil {
		logger.Error("Failed to upsert rating", err, map[string]interface{}{
			"user_id":  rating.UserID,
			"store_id": rating.StoreID,
		})
		return err
	}
	return nil
}

func (r *ratingRepository) FindByUserAndStore(userID, storeID uint) (*model.Rating, error) {
	var rating model.Rating
	err := r.db.Where("user_id = ? AND store_id = ?", userID, storeID).First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListForStore returns all ratings for the store joined with the
// rater's name and email, newest first.
func (r *ratingRepository) ListForStore(storeID uint) ([]StoreRatingEntry, error) {
	var entries []StoreRatingEntry
	err := r.db.Table("ratings").
		Select("users.name, users.email, ratings.rating, ratings.created_at").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("ratings.store_id = ?", storeID).
		Order("ratings.created_at DESC").
		Scan(&entries).Error
	if err != nil {
		logger.Error("Failed to list ratings for store", err, map[string]interface{}{
			"store_id": storeID,
		})
		return nil, err
	}
	return entries, nil
}

// AverageForStore returns the arithmetic mean of the store's ratings,
// 0 when none exist.
func (r *ratingRepository) AverageForStore(storeID uint) (float64, error) {
	var avg float64
	err := r.db.Model(&model.Rating{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *ratingRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Rating{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
