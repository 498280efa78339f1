package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	"github.com/stampdeck/stampdeck-backend/internal/db"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
	"github.com/stampdeck/stampdeck-backend/pkg/util"
)

func setupCampaignControllerTest(t *testing.T) (*gin.Engine, service.CampaignService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := db.SetupTestStore()
	campaignRepo := repository.NewCampaignRepository(store)
	joinRepo := repository.NewCustomerCampaignRepository(store)
	svc := service.NewCampaignService(campaignRepo, joinRepo)

	ctrl := NewCampaignController(svc)
	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()
	router.GET("/public/campaigns/:slug", ctrl.GetBySlug)

	authed := router.Group("/campaigns", authMiddleware.Authenticate())
	authed.GET("", ctrl.List)
	authed.POST("", ctrl.Create)
	authed.PUT("/:id", ctrl.Update)
	authed.DELETE("/:id", ctrl.Delete)

	return router, svc
}

func buildCampaign(name, ownerID string) model.Campaign {
	return model.Campaign{
		Name:           name,
		StampsRequired: 10,
		Active:         true,
		OwnerID:        ownerID,
	}
}

func campaignToken(t *testing.T, userID, role string) string {
	t.Helper()
	tokens, err := util.GenerateTokenPair(userID, userID+"@example.com", role, "test-secret", 15*time.Minute, time.Hour)
	require.NoError(t, err)
	return tokens.AccessToken
}

func TestCampaignController_Create_SlugDedup(t *testing.T) {
	router, _ := setupCampaignControllerTest(t)
	token := campaignToken(t, "owner-1", "business-admin")

	create := func() *httptest.ResponseRecorder {
		body, _ := json.Marshal(CreateCampaignRequest{Name: "Coffee Lovers!!", StampsRequired: 10})
		req := httptest.NewRequest("POST", "/campaigns", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := create()
	assert.Equal(t, http.StatusCreated, w.Code)
	var first map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))
	assert.Equal(t, "coffee-lovers", first["campaign"]["slug"])

	// Creating again with the same normalized name returns the existing record
	w = create()
	assert.Equal(t, http.StatusCreated, w.Code)
	var second map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))
	assert.Equal(t, first["campaign"]["id"], second["campaign"]["id"])
}

func TestCampaignController_PublicBySlug(t *testing.T) {
	router, svc := setupCampaignControllerTest(t)

	_, err := svc.Create(buildCampaign("Coffee Lovers", "owner-1"))
	require.NoError(t, err)

	// No auth header needed on the public route
	req := httptest.NewRequest("GET", "/public/campaigns/coffee-lovers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Coffee Lovers")

	req = httptest.NewRequest("GET", "/public/campaigns/missing", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CAMPAIGN_NOT_FOUND")
}

func TestCampaignController_List_ScopedByRole(t *testing.T) {
	router, svc := setupCampaignControllerTest(t)

	_, err := svc.Create(buildCampaign("Mine", "owner-1"))
	require.NoError(t, err)
	_, err = svc.Create(buildCampaign("Theirs", "owner-2"))
	require.NoError(t, err)

	// Business admin only sees their own campaigns
	req := httptest.NewRequest("GET", "/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+campaignToken(t, "owner-1", "business-admin"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mine")
	assert.NotContains(t, w.Body.String(), "Theirs")

	// Super admin sees everything
	req = httptest.NewRequest("GET", "/campaigns", nil)
	req.Header.Set("Authorization", "Bearer "+campaignToken(t, "admin-1", "super-admin"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mine")
	assert.Contains(t, w.Body.String(), "Theirs")
}

func TestCampaignController_Update_OwnershipEnforced(t *testing.T) {
	router, svc := setupCampaignControllerTest(t)

	created, err := svc.Create(buildCampaign("Coffee Lovers", "owner-1"))
	require.NoError(t, err)

	name := "Renamed"
	body, _ := json.Marshal(service.CampaignUpdate{Name: &name})

	// A different owner is rejected
	req := httptest.NewRequest("PUT", "/campaigns/"+created.ID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+campaignToken(t, "owner-2", "business-admin"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner succeeds and the slug survives the rename
	body, _ = json.Marshal(service.CampaignUpdate{Name: &name})
	req = httptest.NewRequest("PUT", "/campaigns/"+created.ID, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+campaignToken(t, "owner-1", "business-admin"))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")
	assert.Contains(t, w.Body.String(), "coffee-lovers")
}
