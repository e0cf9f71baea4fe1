package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/internal/middleware"
)

// UserController serves the authenticated user's store browsing and
// rating endpoints.
type UserController struct {
	ratingService service.RatingService
}

func NewUserController(ratingService service.RatingService) *UserController {
	return &UserController{
		ratingService: ratingService,
	}
}

type SubmitRatingRequest struct {
	StoreID uint `json:"storeId" binding:"required"`
	Rating  int  `json:"rating"`
}

// ListStores returns all stores with the aggregate rating and the
// caller's own rating per store
// GET /api/user/stores
func (ctrl *UserController) ListStores(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	filter := repository.UserStoreFilter{
		Name:      c.Query("name"),
		Address:   c.Query("address"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
	}

	stores, err := ctrl.ratingService.ListStoresForUser(userID, filter)
	if err != nil {
		log.Error("Failed to list stores for user", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list stores")
		return
	}

	c.JSON(http.StatusOK, stores)
}

// SubmitRating records or overwrites the caller's rating for a store
// POST /api/user/rate
func (ctrl *UserController) SubmitRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	var req SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	if err := ctrl.ratingService.SubmitRating(userID, req.StoreID, req.Rating); err != nil {
		if errors.Is(err, service.ErrInvalidRating) {
			apperrors.BadRequest(c, apperrors.RatingInvalid, "Rating must be between 1 and 5")
			return
		}
		log.Error("Failed to submit rating", err, map[string]interface{}{
			"user_id":  userID,
			"store_id": req.StoreID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "submit rating")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating submitted successfully",
	})
}
