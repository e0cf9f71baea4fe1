package repository

import (
	"strings"

	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/pkg/logger"
	"gorm.io/gorm"
)

// UserFilter carries the optional list-query parameters for users.
// Name, email and address are case-insensitive substring matches; role
// is an exact match.
type UserFilter struct {
	Name      string
	Email     string
	Address   string
	Role      string
	SortBy    string
	SortOrder string
}

var userSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"address":    "address",
	"role":       "role",
	"created_at": "created_at",
}

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindOwnerByEmail(email string) (*model.User, error)
	UpdatePassword(id uint, passwordHash string) error
	FindWithFilter(filter UserFilter) ([]model.User, error)
	Count() (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, map[string]interface{}{
			"email": user.Email,
		})
		return err
	}

	logger.Debug("User created in database", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindOwnerByEmail looks up a user by email but only matches accounts
// holding the store_owner role.
func (r *userRepository) FindOwnerByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ? AND role = ?", email, model.RoleStoreOwner).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(id uint, passwordHash string) error {
	logger.Debug("Updating user password in database", map[string]interface{}{
		"user_id": id,
	})

	err := r.db.Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
	if err != nil {
		logger.Error("Failed to update user password in database", err, map[string]interface{}{
			"user_id": id,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindWithFilter(filter UserFilter) ([]model.User, error) {
	logger.Debug("Finding users with filter", map[string]interface{}{
		"name":       filter.Name,
		"email":      filter.Email,
		"address":    filter.Address,
		"role":       filter.Role,
		"sort_by":    filter.SortBy,
		"sort_order": filter.SortOrder,
	})

	query := r.db.Model(&model.User{})

	if filter.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.Email != "" {
		query = query.Where("LOWER(email) LIKE ?", containsPattern(filter.Email))
	}
	if filter.Address != "" {
		query = query.Where("LOWER(address) LIKE ?", containsPattern(filter.Address))
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	query = applySort(query, userSortColumns, filter.SortBy, filter.SortOrder)

	var users []model.User
	if err := query.Find(&users).Error; err != nil {
		logger.Error("Failed to find users with filter", err, nil)
		return nil, err
	}

	logger.Debug("Users found", map[string]interface{}{
		"count": len(users),
	})
	return users, nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// containsPattern builds a bound case-insensitive LIKE pattern. The
// value is always a parameter, never interpolated.
func containsPattern(value string) string {
	return "%" + strings.ToLower(value) + "%"
}
