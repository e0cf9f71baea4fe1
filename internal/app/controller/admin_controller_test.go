package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

func setupAdminControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	storeRepo := repository.NewStoreRepository(testDB)
	ratingRepo := repository.NewRatingRepository(testDB)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo)

	ctrl := NewAdminController(adminService)
	authMiddleware := middleware.NewAuthMiddleware(testSecret)

	router := gin.New()
	admin := router.Group("/admin")
	admin.Use(authMiddleware.Authenticate(), authMiddleware.RequireRole(string(model.RoleAdmin)))
	{
		admin.GET("/dashboard", ctrl.Dashboard)
		admin.GET("/users", ctrl.ListUsers)
		admin.GET("/users/:id", ctrl.GetUserDetails)
		admin.GET("/stores", ctrl.ListStores)
		admin.POST("/user", ctrl.AddUser)
		admin.POST("/store", ctrl.AddStore)
	}

	return router, testDB
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := util.GenerateToken(1, "admin@example.com", string(model.RoleAdmin), testSecret, 24*time.Hour)
	require.NoError(t, err)
	return token
}

func TestAdminController_RequiresAdminRole(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"Regular user is forbidden", string(model.RoleUser), http.StatusForbidden},
		{"Store owner is forbidden", string(model.RoleStoreOwner), http.StatusForbidden},
		{"Admin is allowed", string(model.RoleAdmin), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := util.GenerateToken(1, "someone@example.com", tt.role, testSecret, 24*time.Hour)
			require.NoError(t, err)

			req := httptest.NewRequest("GET", "/admin/dashboard", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestAdminController_Dashboard(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	user := model.User{Name: "Alice Anderson", Email: "alice@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, testDB.Create(&user).Error)
	store := model.Store{Name: "Green Grocery Market"}
	require.NoError(t, testDB.Create(&store).Error)
	require.NoError(t, testDB.Create(&model.Rating{UserID: user.ID, StoreID: store.ID, Rating: 4}).Error)

	req := httptest.NewRequest("GET", "/admin/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, float64(1), stats["totalUsers"])
	assert.Equal(t, float64(1), stats["totalStores"])
	assert.Equal(t, float64(1), stats["totalRatings"])
}

func TestAdminController_ListUsers_Filtered(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	users := []model.User{
		{Name: "Alice Anderson", Email: "alice@example.com", PasswordHash: "x", Role: model.RoleUser},
		{Name: "Bob Brown", Email: "bob@example.com", PasswordHash: "x", Role: model.RoleAdmin},
	}
	for i := range users {
		require.NoError(t, testDB.Create(&users[i]).Error)
	}

	req := httptest.NewRequest("GET", "/admin/users?role=admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "bob@example.com", listed[0]["email"])

	// Password digests never leave the API
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAdminController_GetUserDetails(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	owner := model.User{Name: "Carol Campbell", Email: "carol@example.com", PasswordHash: "x", Role: model.RoleStoreOwner}
	require.NoError(t, testDB.Create(&owner).Error)
	store := model.Store{Name: "Green Grocery Market", OwnerID: &owner.ID}
	require.NoError(t, testDB.Create(&store).Error)

	req := httptest.NewRequest("GET", "/admin/users/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var details map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &details))
	assert.Equal(t, "Carol Campbell", details["name"])

	stores := details["stores"].([]interface{})
	require.Len(t, stores, 1)
}

func TestAdminController_GetUserDetails_NotFound(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	req := httptest.NewRequest("GET", "/admin/users/9999", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminController_GetUserDetails_BadID(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	req := httptest.NewRequest("GET", "/admin/users/abc", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminController_AddUser(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	w := postJSON(t, router, "POST", "/admin/user", AddUserRequest{
		Name:     "Christopher Williamson",
		Email:    "chris@example.com",
		Password: "Strong!123",
		Role:     "store_owner",
	}, adminToken(t))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")

	var created model.User
	require.NoError(t, testDB.Where("email = ?", "chris@example.com").First(&created).Error)
	assert.Equal(t, model.RoleStoreOwner, created.Role)
}

func TestAdminController_AddUser_TwentyCharacterName(t *testing.T) {
	router, _ := setupAdminControllerTest(t)

	w := postJSON(t, router, "POST", "/admin/user", AddUserRequest{
		Name:     strings.Repeat("a", 20),
		Email:    "twenty@example.com",
		Password: "Strong!123",
		Role:     "user",
	}, adminToken(t))

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminController_AddUser_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		request AddUserRequest
	}{
		{
			name:    "Eight-character name rejected",
			request: AddUserRequest{Name: strings.Repeat("a", 8), Email: "c@example.com", Password: "Strong!123", Role: "user"},
		},
		{
			name:    "Name below admin minimum",
			request: AddUserRequest{Name: strings.Repeat("a", 19), Email: "c@example.com", Password: "Strong!123", Role: "user"},
		},
		{
			name:    "Weak password",
			request: AddUserRequest{Name: strings.Repeat("a", 20), Email: "c@example.com", Password: "weak", Role: "user"},
		},
		{
			name:    "Unknown role",
			request: AddUserRequest{Name: strings.Repeat("a", 20), Email: "c@example.com", Password: "Strong!123", Role: "superadmin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupAdminControllerTest(t)

			w := postJSON(t, router, "POST", "/admin/user", tt.request, adminToken(t))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestAdminController_AddStore(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	owner := model.User{Name: "Carol Campbell", Email: "carol@example.com", PasswordHash: "x", Role: model.RoleStoreOwner}
	require.NoError(t, testDB.Create(&owner).Error)

	w := postJSON(t, router, "POST", "/admin/store", AddStoreRequest{
		Name:       "Green Grocery Market",
		Email:      "green@stores.example.com",
		Address:    "5 Orchard Lane",
		OwnerEmail: "carol@example.com",
	}, adminToken(t))

	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Store
	require.NoError(t, testDB.Where("name = ?", "Green Grocery Market").First(&created).Error)
	require.NotNil(t, created.OwnerID)
	assert.Equal(t, owner.ID, *created.OwnerID)
}

func TestAdminController_AddStore_UnknownOwnerStillCreates(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	w := postJSON(t, router, "POST", "/admin/store", AddStoreRequest{
		Name:       "Green Grocery Market",
		OwnerEmail: "nobody@example.com",
	}, adminToken(t))

	assert.Equal(t, http.StatusCreated, w.Code)

	var created model.Store
	require.NoError(t, testDB.Where("name = ?", "Green Grocery Market").First(&created).Error)
	assert.Nil(t, created.OwnerID)
}

func TestAdminController_ListStores_SortByRating(t *testing.T) {
	router, testDB := setupAdminControllerTest(t)

	user := model.User{Name: "Alice Anderson", Email: "alice@example.com", PasswordHash: "x", Role: model.RoleUser}
	require.NoError(t, testDB.Create(&user).Error)

	low := model.Store{Name: "Harbor Hardware House"}
	high := model.Store{Name: "Green Grocery Market"}
	require.NoError(t, testDB.Create(&low).Error)
	require.NoError(t, testDB.Create(&high).Error)

	require.NoError(t, testDB.Create(&model.Rating{UserID: user.ID, StoreID: low.ID, Rating: 2}).Error)
	require.NoError(t, testDB.Create(&model.Rating{UserID: user.ID, StoreID: high.ID, Rating: 5}).Error)

	req := httptest.NewRequest("GET", "/admin/stores?sortBy=rating&sortOrder=desc", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var stores []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stores))
	require.Len(t, stores, 2)
	assert.Equal(t, "Green Grocery Market", stores[0]["name"])
	assert.Equal(t, float64(5), stores[0]["rating"])
}
