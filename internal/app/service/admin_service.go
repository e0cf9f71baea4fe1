package service

import (
	"errors"
	"time"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"gorm.io/gorm"
)

const (
	adminUserNameMinLength = 20
	adminUserNameMaxLength = 60
	storeNameMinLength     = 10
	storeNameMaxLength     = 60
)

// DashboardStats are the platform totals shown on the admin dashboard.
type DashboardStats struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// UserDetails is a single user with, for store owners, their stores and
// each store's aggregate rating.
type UserDetails struct {
	ID        uint                    `json:"id"`
	Name      string                  `json:"name"`
	Email     string                  `json:"email"`
	Address   string                  `json:"address"`
	Role      model.UserRole          `json:"role"`
	CreatedAt time.Time               `json:"created_at"`
	Stores    []repository.OwnedStore `json:"stores,omitempty"`
}

type AdminService interface {
	Dashboard() (*DashboardStats, error)
	ListUsers(filter repository.UserFilter) ([]model.User, error)
	GetUserDetails(id uint) (*UserDetails, error)
	ListStores(filter repository.StoreFilter) ([]repository.StoreWithRating, error)
	AddUser(name, email, password, address string, role model.UserRole) (*model.User, error)
	AddStore(name, email, address, ownerEmail string) (*model.Store, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *adminService) Dashboard() (*DashboardStats, error) {
	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	totalStores, err := s.storeRepo.Count()
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.ratingRepo.Count()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}, nil
}

func (s *adminService) ListUsers(filter repository.UserFilter) ([]model.User, error) {
	return s.userRepo.FindWithFilter(filter)
}

func (s *adminService) GetUserDetails(id uint) (*UserDetails, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	details := &UserDetails{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Address:   user.Address,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}

	if user.Role == model.RoleStoreOwner {
		stores, err := s.storeRepo.FindByOwnerWithRating(user.ID)
		if err != nil {
			return nil, err
		}
		details.Stores = stores
	}

	return details, nil
}

func (s *adminService) ListStores(filter repository.StoreFilter) ([]repository.StoreWithRating, error) {
	return s.storeRepo.FindWithFilter(filter)
}

// AddUser provisions an account with any role. The name and password
// rules are intentionally stricter than self-signup.
func (s *adminService) AddUser(name, email, password, address string, role model.UserRole) (*model.User, error) {
	logger.Info("Admin creating user", map[string]interface{}{
		"email": email,
		"role":  role,
	})

	if err := util.ValidateNameLength(name, adminUserNameMinLength, adminUserNameMaxLength); err != nil {
		return nil, err
	}
	if err := util.ValidateAddress(address); err != nil {
		return nil, err
	}
	if err := util.AdminPasswordPolicy.Validate(password); err != nil {
		return nil, err
	}
	if !model.ValidRole(role) {
		return nil, util.NewValidationError("Role must be one of admin, user, store_owner")
	}

	passwordHash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Address:      address,
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if apperrors.IsDuplicateKey(err) {
			logger.Warn("Admin user creation failed: email already exists", map[string]interface{}{
				"email": email,
			})
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.Info("Admin created user", map[string]interface{}{
		"user_id": user.ID,
		"email":   email,
		"role":    role,
	})
	return user, nil
}

// AddStore creates a store. The owner email is resolved best-effort:
// when it does not match a store_owner account the store is created
// unowned and no error reaches the caller.
func (s *adminService) AddStore(name, email, address, ownerEmail string) (*model.Store, error) {
	logger.Info("Admin creating store", map[string]interface{}{
		"name":        name,
		"owner_email": ownerEmail,
	})

	if err := util.ValidateNameLength(name, storeNameMinLength, storeNameMaxLength); err != nil {
		return nil, err
	}
	if err := util.ValidateAddress(address); err != nil {
		return nil, err
	}

	var ownerID *uint
	if ownerEmail != "" {
		owner, err := s.userRepo.FindOwnerByEmail(ownerEmail)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			logger.Warn("Owner email did not resolve to a store_owner, creating store unowned", map[string]interface{}{
				"owner_email": ownerEmail,
			})
		} else {
			ownerID = &owner.ID
		}
	}

	store := &model.Store{
		Name:    name,
		Email:   email,
		Address: address,
		OwnerID: ownerID,
	}

	if err := s.storeRepo.Create(store); err != nil {
		if apperrors.IsDuplicateKey(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.Info("Admin created store", map[string]interface{}{
		"store_id": store.ID,
		"name":     name,
		"owner_id": ownerID,
	})
	return store, nil
}
