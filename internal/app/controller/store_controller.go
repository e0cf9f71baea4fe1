package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	apperrors "github.com/ratehub/ratehub-backend/internal/errors"
	"github.com/ratehub/ratehub-backend/internal/middleware"
)

// StoreController serves the store-owner dashboard endpoints.
type StoreController struct {
	storeOwnerService service.StoreOwnerService
}

func NewStoreController(storeOwnerService service.StoreOwnerService) *StoreController {
	return &StoreController{
		storeOwnerService: storeOwnerService,
	}
}

// GetRatings lists ratings received by the caller's store, newest first
// GET /api/store/ratings
func (ctrl *StoreController) GetRatings(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	ratings, err := ctrl.storeOwnerService.RatingsForMyStore(ownerID)
	if err != nil {
		log.Error("Failed to list store ratings", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "list store ratings")
		return
	}

	c.JSON(http.StatusOK, ratings)
}

// GetAverageRating returns the caller's store name and average rating
// GET /api/store/average
func (ctrl *StoreController) GetAverageRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	ownerID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Unauthorized(c, "Authentication required")
		return
	}

	average, err := ctrl.storeOwnerService.AverageForMyStore(ownerID)
	if err != nil {
		log.Error("Failed to compute store average", err, map[string]interface{}{
			"owner_id": ownerID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "average store rating")
		return
	}

	if !average.HasStore {
		c.JSON(http.StatusOK, gin.H{
			"storeName":     nil,
			"averageRating": 0,
		})
		return
	}

	// The average leaves storage raw and is formatted only here
	c.JSON(http.StatusOK, gin.H{
		"storeName":     average.StoreName,
		"averageRating": strconv.FormatFloat(average.AverageRating, 'f', 2, 64),
	})
}
