package service

import (
	"errors"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/pkg/logger"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const (
	minRating = 1
	maxRating = 5
)

// RatingService covers the user-facing surface: browsing stores with
// aggregate plus own ratings, and submitting a rating.
type RatingService interface {
	ListStoresForUser(userID uint, filter repository.UserStoreFilter) ([]repository.StoreForUser, error)
	SubmitRating(userID, storeID uint, value int) error
}

type ratingService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewRatingService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *ratingService) ListStoresForUser(userID uint, filter repository.UserStoreFilter) ([]repository.StoreForUser, error) {
	return s.storeRepo.FindForUser(userID, filter)
}

// SubmitRating records the user's rating for the store. Re-submission
// overwrites the previous value; this is the intended change-your-rating
// path, not an error.
func (s *ratingService) SubmitRating(userID, storeID uint, value int) error {
	if value < minRating || value > maxRating {
		logger.Warn("Rating rejected: out of range", map[string]interface{}{
			"user_id":  userID,
			"store_id": storeID,
			"rating":   value,
		})
		return ErrInvalidRating
	}

	rating := &model.Rating{
		UserID:  userID,
		StoreID: storeID,
		Rating:  value,
	}
	if err := s.ratingRepo.Upsert(rating); err != nil {
		return err
	}

	logger.Info("Rating submitted", map[string]interface{}{
		"user_id":  userID,
		"store_id": storeID,
		"rating":   value,
	})
	return nil
}
