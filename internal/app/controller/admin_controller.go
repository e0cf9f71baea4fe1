package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/internal/middleware"
	"github.com/ratehub/ratehub-backend/pkg/util"
)

type AdminController struct {
	adminService service.AdminService
}

func NewAdminController(adminService service.AdminService) *AdminController {
	return &AdminController{
		adminService: adminService,
	}
}

type AddUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Address  string `json:"address"`
	Role     string `json:"role" binding:"required"`
}

type AddStoreRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	OwnerEmail string `json:"ownerEmail"`
}

// Dashboard returns platform totals
// GET /api/admin/dashboard
func (ctrl *AdminController) Dashboard(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	stats, err := ctrl.adminService.Dashboard()
	if err != nil {
		log.Error("Failed to load dashboard stats", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "load dashboard")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListUsers returns users matching the optional filters
// GET /api/admin/users
func (ctrl *AdminController) ListUsers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.UserFilter{
		Name:      c.Query("name"),
		Email:     c.Query("email"),
		Address:   c.Query("address"),
		Role:      c.Query("role"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	users, err := ctrl.adminService.ListUsers(filter)
	if err != nil {
		log.Error("Failed to list users", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list users")
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserDetails returns one user, with owned stores for store owners
// GET /api/admin/users/:id
func (ctrl *AdminController) GetUserDetails(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid user id")
		return
	}

	details, err := ctrl.adminService.GetUserDetails(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		log.Error("Failed to load user details", err, map[string]interface{}{
			"user_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get user details")
		return
	}

	c.JSON(http.StatusOK, details)
}

// ListStores returns stores with their aggregate rating
// GET /api/admin/stores
func (ctrl *AdminController) ListStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	filter := repository.StoreFilter{
		Name:      c.Query("name"),
		Email:     c.Query("email"),
		Address:   c.Query("address"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	stores, err := ctrl.adminService.ListStores(filter)
	if err != nil {
		log.Error("Failed to list stores", err, nil)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list stores")
		return
	}

	c.JSON(http.StatusOK, stores)
}

// AddUser provisions an account with a selectable role
// POST /api/admin/user
func (ctrl *AdminController) AddUser(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	user, err := ctrl.adminService.AddUser(req.Name, req.Email, req.Password, req.Address, model.UserRole(req.Role))
	if err != nil {
		var vErr *util.ValidationError
		if errors.As(err, &vErr) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, vErr.Message)
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, "Email already exists")
			return
		}
		log.Error("Failed to create user", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"id":      user.ID,
	})
}

// AddStore creates a store, optionally linking a store_owner by email
// POST /api/admin/store
func (ctrl *AdminController) AddStore(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req AddStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	store, err := ctrl.adminService.AddStore(req.Name, req.Email, req.Address, req.OwnerEmail)
	if err != nil {
		var vErr *util.ValidationError
		if errors.As(err, &vErr) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, vErr.Message)
			return
		}
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			apperrors.BadRequest(c, apperrors.AuthEmailAlreadyExists, "Email already exists")
			return
		}
		log.Error("Failed to create store", err, map[string]interface{}{
			"name": req.Name,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create store")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Store created successfully",
		"id":      store.ID,
	})
}
