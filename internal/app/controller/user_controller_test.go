package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ratehub/ratehub-backend/internal/app/model"
	"github.com/ratehub/ratehub-backend/internal/app/repository"
	"github.com/ratehub/ratehub-backend/internal/app/service"
	"github.com/ratehub/ratehub-backend/internal/db"
	"github.com/ratehub/ratehub-backend/internal/middleware"
	"github.com/ratehub/ratehub-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	storeRepo := repository.NewStoreRepository(testDB)
	ratingRepo := repository.NewRatingRepository(testDB)
	ratingService := service.NewRatingService(storeRepo, ratingRepo)

	ctrl := NewUserController(ratingService)
	authMiddleware := middleware.NewAuthMiddleware(testSecret)

	router := gin.New()
	user := router.Group("/user")
	user.Use(authMiddleware.Authenticate())
	{
		user.GET("/stores", ctrl.ListStores)
		user.POST("/rate", ctrl.SubmitRating)
	}

	return router, testDB
}

func userToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := util.GenerateToken(userID, "alice@example.com", string(model.RoleUser), testSecret, 24*time.Hour)
	require.NoError(t, err)
	return token
}

func seedUserAndStore(t *testing.T, testDB *gorm.DB) (model.User, model.Store) {
	t.Helper()

	user := model.User{Name: "Alice Anderson", Email: "alice@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, testDB.Create(&user).Error)

	store := model.Store{Name: "Green Grocery Market", Address: "5 Orchard Lane"}
	require.NoError(t, testDB.Create(&store).Error)

	return user, store
}

func TestUserController_ListStores(t *testing.T) {
	router, testDB := setupUserControllerTest(t)
	user, store := seedUserAndStore(t, testDB)

	require.NoError(t, testDB.Create(&model.Rating{UserID: user.ID, StoreID: store.ID, Rating: 4}).Error)

	req := httptest.NewRequest("GET", "/user/stores", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, user.ID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stores []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stores))
	require.Len(t, stores, 1)
	assert.Equal(t, "Green Grocery Market", stores[0]["name"])
	assert.Equal(t, float64(4), stores[0]["overallRating"])
	assert.Equal(t, float64(4), stores[0]["userRating"])
}

func TestUserController_ListStores_UnratedIsNull(t *testing.T) {
	router, testDB := setupUserControllerTest(t)
	user, _ := seedUserAndStore(t, testDB)

	req := httptest.NewRequest("GET", "/user/stores", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, user.ID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stores []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stores))
	require.Len(t, stores, 1)
	assert.Equal(t, float64(0), stores[0]["overallRating"])
	assert.Nil(t, stores[0]["userRating"])
}

func TestUserController_ListStores_FilterByName(t *testing.T) {
	router, testDB := setupUserControllerTest(t)
	user, _ := seedUserAndStore(t, testDB)

	other := model.Store{Name: "Harbor Hardware House", Address: "18 Dock Road"}
	require.NoError(t, testDB.Create(&other).Error)

	req := httptest.NewRequest("GET", "/user/stores?name=harbor", nil)
	req.Header.Set("Authorization", "Bearer "+userToken(t, user.ID))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stores []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stores))
	require.Len(t, stores, 1)
	assert.Equal(t, "Harbor Hardware House", stores[0]["name"])
}

func TestUserController_SubmitRating(t *testing.T) {
	router, testDB := setupUserControllerTest(t)
	user, store := seedUserAndStore(t, testDB)

	w := postJSON(t, router, "POST", "/user/rate", SubmitRatingRequest{
		StoreID: store.ID,
		Rating:  4,
	}, userToken(t, user.ID))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Rating submitted successfully")

	var rating model.Rating
	require.NoError(t, testDB.Where("user_id = ? AND store_id = ?", user.ID, store.ID).First(&rating).Error)
	assert.Equal(t, 4, rating.Rating)
}

func TestUserController_SubmitRating_Replaces(t *testing.T) {
	router, testDB := setupUserControllerTest(t)
	user, store := seedUserAndStore(t, testDB)

	first := postJSON(t, router, "POST", "/user/rate", SubmitRatingRequest{StoreID: store.ID, Rating: 3}, userToken(t, user.ID))
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, router, "POST", "/user/rate", SubmitRatingRequest{StoreID: store.ID, Rating: 5}, userToken(t, user.ID))
	require.Equal(t, http.StatusOK, second.Code)

	var count int64
	require.NoError(t, testDB.Model(&model.Rating{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var rating model.Rating
	require.NoError(t, testDB.Where("user_id = ? AND store_id = ?", user.ID, store.ID).First(&rating).Error)
	assert.Equal(t, 5, rating.Rating)
}

func TestUserController_SubmitRating_OutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		value int
	}{
		{"Zero", 0},
		{"Six", 6},
		{"Negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, testDB := setupUserControllerTest(t)
			user, store := seedUserAndStore(t, testDB)

			w := postJSON(t, router, "POST", "/user/rate", SubmitRatingRequest{
				StoreID: store.ID,
				Rating:  tt.value,
			}, userToken(t, user.ID))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "RATING_INVALID")
		})
	}
}

func TestUserController_SubmitRating_RequiresAuth(t *testing.T) {
	router, _ := setupUserControllerTest(t)

	w := postJSON(t, router, "POST", "/user/rate", SubmitRatingRequest{StoreID: 1, Rating: 4}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
