package service

import (
	"errors"

	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// StoreAverage is the owner dashboard's aggregate. HasStore is false
// when the owner has no store yet; the controller then reports a null
// store name and a zero average.
type StoreAverage struct {
	StoreName     string
	AverageRating float64
	HasStore      bool
}

// StoreOwnerService serves the store-owner dashboard: ratings received
// by the caller's store and their average. Owners with several stores
// are reported on their first store.
type StoreOwnerService interface {
	RatingsForMyStore(ownerID uint) ([]repository.StoreRatingEntry, error)
	AverageForMyStore(ownerID uint) (*StoreAverage, error)
}

type storeOwnerService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewStoreOwnerService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) StoreOwnerService {
	return &storeOwnerService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *storeOwnerService) RatingsForMyStore(ownerID uint) ([]repository.StoreRatingEntry, error) {
	store, err := s.storeRepo.FindFirstByOwnerID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Debug("Owner has no store yet", map[string]interface{}{
				"owner_id": ownerID,
			})
			return []repository.StoreRatingEntry{}, nil
		}
		return nil, err
	}

	return s.ratingRepo.ListForStore(store.ID)
}

func (s *storeOwnerService) AverageForMyStore(ownerID uint) (*StoreAverage, error) {
	store, err := s.storeRepo.FindFirstByOwnerID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &StoreAverage{HasStore: false}, nil
		}
		return nil, err
	}

	avg, err := s.ratingRepo.AverageForStore(store.ID)
	if err != nil {
		return nil, err
	}

	return &StoreAverage{
		StoreName:     store.Name,
		AverageRating: avg,
		HasStore:      true,
	}, nil
}
