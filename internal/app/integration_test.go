package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stampdeck/stampdeck-backend/internal/app/controller"
	"github.com/stampdeck/stampdeck-backend/internal/app/model"
	"github.com/stampdeck/stampdeck-backend/internal/app/repository"
	"github.com/stampdeck/stampdeck-backend/internal/app/service"
	"github.com/stampdeck/stampdeck-backend/internal/db"
	"github.com/stampdeck/stampdeck-backend/internal/middleware"
)

type TestServer struct {
	Router *gin.Engine
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)

	store := db.SetupTestStore()
	t.Cleanup(func() { store.Close() })

	// Repositories
	userRepo := repository.NewUserRepository(store)
	businessRepo := repository.NewBusinessRepository(store)
	campaignRepo := repository.NewCampaignRepository(store)
	rewardRepo := repository.NewRewardRepository(store)
	cardRepo := repository.NewLoyaltyCardRepository(store)
	redemptionRepo := repository.NewRedemptionRepository(store)
	referralRepo := repository.NewReferralRepository(store)
	joinRepo := repository.NewCustomerCampaignRepository(store)

	// Services
	referralService := service.NewReferralService(referralRepo)
	authService := service.NewAuthService(
		userRepo,
		referralService,
		"test-secret",
		15*time.Minute,
		7*24*time.Hour,
	)
	businessService := service.NewBusinessService(businessRepo)
	campaignService := service.NewCampaignService(campaignRepo, joinRepo)
	rewardService := service.NewRewardService(rewardRepo)
	loyaltyService := service.NewLoyaltyService(cardRepo, campaignRepo, rewardRepo, redemptionRepo, joinRepo)

	// Controllers
	authController := controller.NewAuthController(authService)
	businessController := controller.NewBusinessController(businessService)
	campaignController := controller.NewCampaignController(campaignService)
	rewardController := controller.NewRewardController(rewardService)
	loyaltyController := controller.NewLoyaltyController(loyaltyService)

	authMiddleware := middleware.NewAuthMiddleware("test-secret")

	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", authMiddleware.Authenticate(), authController.Me)
	}

	businesses := router.Group("/api/v1/businesses")
	businesses.Use(authMiddleware.Authenticate())
	{
		businesses.POST("",
			authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
			businessController.Create,
		)
	}

	campaigns := router.Group("/api/v1/campaigns")
	campaigns.Use(authMiddleware.Authenticate())
	{
		campaigns.POST("",
			authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
			campaignController.Create,
		)
	}

	rewards := router.Group("/api/v1/rewards")
	rewards.Use(
		authMiddleware.Authenticate(),
		authMiddleware.RequireRole(string(model.RoleBusinessAdmin), string(model.RoleSuperAdmin)),
	)
	{
		rewards.POST("", rewardController.Create)
	}

	loyalty := router.Group("/api/v1/loyalty")
	loyalty.Use(authMiddleware.Authenticate())
	{
		loyalty.GET("/cards", loyaltyController.ListCards)
		loyalty.POST("/scan", loyaltyController.Scan)
		loyalty.POST("/redeem", loyaltyController.Redeem)
		loyalty.GET("/redemptions", loyaltyController.ListRedemptions)
	}

	return &TestServer{Router: router}
}

func (ts *TestServer) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func (ts *TestServer) registerUser(t *testing.T, email, role string) string {
	t.Helper()

	w := ts.do(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	tokens := resp["tokens"].(map[string]interface{})
	return tokens["access_token"].(string)
}

func TestCompleteLoyaltyJourney(t *testing.T) {
	ts := setupIntegrationTest(t)

	// 1. Register a business admin and set up the tenant
	t.Log("Step 1: Register business admin")
	adminToken := ts.registerUser(t, "owner@example.com", "business-admin")

	t.Log("Step 2: Create business")
	w := ts.do(t, "POST", "/api/v1/businesses", adminToken, map[string]interface{}{
		"name":        "Brew & Bean",
		"description": "Specialty coffee",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var businessResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &businessResp))
	business := businessResp["business"].(map[string]interface{})
	assert.Equal(t, "brew-bean", business["slug"])

	t.Log("Step 3: Create campaign")
	w = ts.do(t, "POST", "/api/v1/campaigns", adminToken, map[string]interface{}{
		"business_id":     business["id"],
		"name":            "Coffee Club",
		"stamps_required": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var campaignResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &campaignResp))
	campaign := campaignResp["campaign"].(map[string]interface{})
	campaignID := campaign["id"].(string)
	campaignSlug := campaign["slug"].(string)

	t.Log("Step 4: Create reward")
	w = ts.do(t, "POST", "/api/v1/rewards", adminToken, map[string]interface{}{
		"campaign_id":     campaignID,
		"name":            "Free Espresso",
		"stamps_required": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var rewardResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rewardResp))
	rewardID := rewardResp["reward"].(map[string]interface{})["id"].(string)

	// 2. Register a customer and collect stamps by scanning
	t.Log("Step 5: Register customer")
	customerToken := ts.registerUser(t, "customer@example.com", "customer")

	payload := model.StampPayload(campaignSlug)

	t.Log("Step 6: First scan auto-joins and stamps")
	w = ts.do(t, "POST", "/api/v1/loyalty/scan", customerToken, map[string]string{
		"payload": payload,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var scanResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scanResp))
	assert.Equal(t, true, scanResp["joined"])
	card := scanResp["card"].(map[string]interface{})
	assert.Equal(t, float64(1), card["stamps"])

	t.Log("Step 7: Scan until the reward is affordable")
	for i := 0; i < 2; i++ {
		w = ts.do(t, "POST", "/api/v1/loyalty/scan", customerToken, map[string]string{
			"payload": payload,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = ts.do(t, "GET", "/api/v1/loyalty/cards", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cardsResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cardsResp))
	cards := cardsResp["cards"].([]interface{})
	require.Len(t, cards, 1)
	cardView := cards[0].(map[string]interface{})["card"].(map[string]interface{})
	assert.Equal(t, float64(3), cardView["stamps"])

	// 3. Redeem and verify the balance and history
	t.Log("Step 8: Redeem reward")
	w = ts.do(t, "POST", "/api/v1/loyalty/redeem", customerToken, map[string]string{
		"campaign_id": campaignID,
		"reward_id":   rewardID,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var redeemResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &redeemResp))
	redemption := redeemResp["redemption"].(map[string]interface{})
	assert.Equal(t, rewardID, redemption["reward_id"])

	t.Log("Step 9: Stamps were deducted")
	w = ts.do(t, "GET", "/api/v1/loyalty/cards", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cardsResp))
	cardView = cardsResp["cards"].([]interface{})[0].(map[string]interface{})["card"].(map[string]interface{})
	assert.Equal(t, float64(0), cardView["stamps"])

	t.Log("Step 10: Redemption history records the claim")
	w = ts.do(t, "GET", "/api/v1/loyalty/redemptions", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var historyResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &historyResp))
	redemptions := historyResp["redemptions"].([]interface{})
	assert.Len(t, redemptions, 1)

	t.Log("Step 11: Redeeming again fails on an empty card")
	w = ts.do(t, "POST", "/api/v1/loyalty/redeem", customerToken, map[string]string{
		"campaign_id": campaignID,
		"reward_id":   rewardID,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthenticationFlow(t *testing.T) {
	ts := setupIntegrationTest(t)

	w := ts.do(t, "POST", "/api/v1/auth/register", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
		"name":     "Test User",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var registerResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registerResp))
	tokens := registerResp["tokens"].(map[string]interface{})
	accessToken := tokens["access_token"].(string)

	// Login with the same credentials
	w = ts.do(t, "POST", "/api/v1/auth/login", "", map[string]string{
		"email":    "test@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Fetch the profile with the registration token
	w = ts.do(t, "GET", "/api/v1/auth/me", accessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var meResp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &meResp))
	user := meResp["user"].(map[string]interface{})
	assert.Equal(t, "test@example.com", user["email"])
	assert.Equal(t, "customer", user["role"])
	assert.Equal(t, "/customer", user["dashboard"])
}

func TestUnauthorizedAccess(t *testing.T) {
	ts := setupIntegrationTest(t)

	protectedRoutes := []string{
		"/api/v1/auth/me",
		"/api/v1/loyalty/cards",
		"/api/v1/loyalty/redemptions",
	}

	for _, route := range protectedRoutes {
		t.Run(route, func(t *testing.T) {
			w := ts.do(t, "GET", route, "", nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRoleEnforcement(t *testing.T) {
	ts := setupIntegrationTest(t)

	customerToken := ts.registerUser(t, fmt.Sprintf("c%d@example.com", time.Now().UnixNano()), "customer")

	// Customers cannot create businesses
	w := ts.do(t, "POST", "/api/v1/businesses", customerToken, map[string]string{
		"name": "Sneaky Business",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}
