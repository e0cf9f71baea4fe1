package repository

import (
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// StoreFilter carries the optional list-query parameters for the admin
// store list.
type StoreFilter struct {
	Name      string
	Email     string
	Address   string
	SortBy    string
	SortOrder string
}

// UserStoreFilter carries the optional list-query parameters for the
// user-facing store list.
type UserStoreFilter struct {
	Name      string
	Address   string
	SortBy    string
	SortOrder string
}

// StoreWithRating is an admin store row with the aggregate rating
// derived from an outer join (0 when the store has no ratings).
type StoreWithRating struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Address string  `json:"address"`
	Rating  float64 `json:"rating"`
}

// StoreForUser is a user-facing store row carrying both the aggregate
// rating and the requesting user's own rating (nil when unrated).
type StoreForUser struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	OverallRating float64 `gorm:"column:overall_rating" json:"overallRating"`
	UserRating    *int    `gorm:"column:user_rating" json:"userRating"`
}

// OwnedStore is a store row embedded in admin user details.
type OwnedStore struct {
	ID     uint    `json:"id"`
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

var storeSortColumns = map[string]string{
	"name":    "stores.name",
	"email":   "stores.email",
	"address": "stores.address",
	"rating":  "rating",
}

var userStoreSortColumns = map[string]string{
	"name":          "stores.name",
	"address":       "stores.address",
	"overallRating": "overall_rating",
}

type StoreRepository interface {
	Create(store *model.Store) error
	FindWithFilter(filter StoreFilter) ([]StoreWithRating, error)
	FindForUser(userID uint, filter UserStoreFilter) ([]StoreForUser, error)
	FindFirstByOwnerID(ownerID uint) (*model.Store, error)
	FindByOwnerWithRating(ownerID uint) ([]OwnedStore, error)
	Count() (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) Create(store *model.Store) error {
	logger.Debug("Creating store in database", map[string]interface{}{
		"name":     store.Name,
		"owner_id": store.OwnerID,
	})

	if err := r.db.Create(store).Error; err != nil {
		logger.Error("Failed to create store in database", err, map[string]interface{}{
			"name": store.Name,
		})
		return err
	}

	logger.Debug("Store created in database", map[string]interface{}{
		"store_id": store.ID,
		"name":     store.Name,
	})
	return nil
}

// ratingStats builds the grouped ratings subquery joined against stores
// to derive the aggregate rating column.
func (r *storeRepository) ratingStats() *gorm.DB {
	return r.db.Table("ratings").
		Select("ratings.store_id AS store_id, AVG(ratings.rating) AS avg_rating").
		Group("ratings.store_id")
}

func (r *storeRepository) FindWithFilter(filter StoreFilter) ([]StoreWithRating, error) {
	logger.Debug("Finding stores with filter", map[string]interface{}{
		"name":       filter.Name,
		"email":      filter.Email,
		"address":    filter.Address,
		"sort_by":    filter.SortBy,
		"sort_order": filter.SortOrder,
	})

	query := r.db.Model(&model.Store{}).
		Select("stores.id, stores.name, stores.email, stores.address, COALESCE(rating_stats.avg_rating, 0) AS rating").
		Joins("LEFT JOIN (?) AS rating_stats ON rating_stats.store_id = stores.id", r.ratingStats())

	if filter.Name != "" {
		query = query.Where("LOWER(stores.name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.Email != "" {
		query = query.Where("LOWER(stores.email) LIKE ?", containsPattern(filter.Email))
	}
	if filter.Address != "" {
		query = query.Where("LOWER(stores.address) LIKE ?", containsPattern(filter.Address))
	}

	query = applySort(query, storeSortColumns, filter.SortBy, filter.SortOrder)

	var stores []StoreWithRating
	if err := query.Scan(&stores).Error; err != nil {
		logger.Error("Failed to find stores with filter", err, nil)
		return nil, err
	}

	logger.Debug("Stores found", map[string]interface{}{
		"count": len(stores),
	})
	return stores, nil
}

func (r *storeRepository) FindForUser(userID uint, filter UserStoreFilter) ([]StoreForUser, error) {
	logger.Debug("Finding stores for user", map[string]interface{}{
		"user_id":    userID,
		"name":       filter.Name,
		"address":    filter.Address,
		"sort_by":    filter.SortBy,
		"sort_order": filter.SortOrder,
	})

	query := r.db.Model(&model.Store{}).
		Select("stores.id, stores.name, stores.address, COALESCE(rating_stats.avg_rating, 0) AS overall_rating, user_ratings.rating AS user_rating").
		Joins("LEFT JOIN (?) AS rating_stats ON rating_stats.store_id = stores.id", r.ratingStats()).
		Joins("LEFT JOIN ratings AS user_ratings ON user_ratings.store_id = stores.id AND user_ratings.user_id = ?", userID)

	if filter.Name != "" {
		query = query.Where("LOWER(stores.name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.Address != "" {
		query = query.Where("LOWER(stores.address) LIKE ?", containsPattern(filter.Address))
	}

	query = applySort(query, userStoreSortColumns, filter.SortBy, filter.SortOrder)

	var stores []StoreForUser
	if err := query.Scan(&stores).Error; err != nil {
		logger.Error("Failed to find stores for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}

	logger.Debug("Stores found for user", map[string]interface{}{
		"user_id": userID,
		"count":   len(stores),
	})
	return stores, nil
}

// FindFirstByOwnerID returns the lowest-id store owned by the user, the
// store the owner dashboard reports on.
func (r *storeRepository) FindFirstByOwnerID(ownerID uint) (*model.Store, error) {
	var store model.Store
	err := r.db.Where("owner_id = ?", ownerID).Order("id ASC").First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByOwnerWithRating(ownerID uint) ([]OwnedStore, error) {
	var stores []OwnedStore
	err := r.db.Model(&model.Store{}).
		Select("stores.id, stores.name, COALESCE(rating_stats.avg_rating, 0) AS rating").
		Joins("LEFT JOIN (?) AS rating_stats ON rating_stats.store_id = stores.id", r.ratingStats()).
		Where("stores.owner_id = ?", ownerID).
		Scan(&stores).Error
	if err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Store{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
