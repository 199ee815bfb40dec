package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pollboard/internal/auth"
	"pollboard/internal/models"
	"pollboard/internal/repository"
	"pollboard/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	auth.InitJWT("test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Category{},
		&models.Poll{},
		&models.PollOption{},
		&models.Vote{},
		&models.PollBookmark{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	repo := repository.NewRepository(db)
	pollService := services.NewPollService(repo)
	voteService := services.NewVoteService(db)
	pollHandler := NewPollHandler(pollService, voteService, repo, nil)

	router := gin.New()
	router.GET("/api/polls", pollHandler.GetPolls)
	router.GET("/api/polls/:id/results", pollHandler.GetResults)

	optional := router.Group("/api")
	optional.Use(auth.OptionalAuthMiddleware())
	{
		optional.GET("/polls/:id", pollHandler.GetPoll)
		optional.POST("/polls/:id/vote", pollHandler.Vote)
	}

	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.POST("/polls", pollHandler.CreatePoll)
		api.PUT("/polls/:id/status", pollHandler.UpdateStatus)
		api.DELETE("/polls/:id", pollHandler.DeletePoll)
	}

	return router, db
}

func createProfileWithToken(t *testing.T, db *gorm.DB, email string) (*models.Profile, string) {
	profile := &models.Profile{ID: uuid.New(), Email: email}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}
	token, err := auth.GenerateToken(profile.ID, profile.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return profile, token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePollEndpoint(t *testing.T) {
	router, db := setupTestServer(t)
	_, token := createProfileWithToken(t, db, "creator@example.com")

	body := map[string]interface{}{
		"title":   "Best editor?",
		"options": []string{"vim", "emacs", "vscode"},
	}

	// Unauthenticated creation is rejected
	w := doJSON(t, router, "POST", "/api/polls", "", body)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, router, "POST", "/api/polls", token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool        `json:"success"`
		Data    models.Poll `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Data.Status != models.PollStatusActive {
		t.Errorf("expected active poll, got %s", resp.Data.Status)
	}

	// The detail view carries the ordered options
	w = doJSON(t, router, "GET", "/api/polls/"+resp.Data.ID.String(), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var detail struct {
		Data struct {
			Options []models.PollOption `json:"options"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if len(detail.Data.Options) != 3 {
		t.Errorf("expected 3 options, got %d", len(detail.Data.Options))
	}
}

func TestCreatePollValidationMessage(t *testing.T) {
	router, db := setupTestServer(t)
	_, token := createProfileWithToken(t, db, "creator@example.com")

	w := doJSON(t, router, "POST", "/api/polls", token, map[string]interface{}{
		"title":   "Lonely poll",
		"options": []string{"only one", "  "},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	var resp struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "At least 2 options are required" {
		t.Errorf("expected specific validation message, got %q", resp.Error)
	}
}

func TestVoteAndResultsEndpoints(t *testing.T) {
	router, db := setupTestServer(t)
	_, creatorToken := createProfileWithToken(t, db, "creator@example.com")
	_, voterToken := createProfileWithToken(t, db, "voter@example.com")

	w := doJSON(t, router, "POST", "/api/polls", creatorToken, map[string]interface{}{
		"title":   "Tabs or spaces?",
		"options": []string{"Tabs", "Spaces"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}
	var created struct {
		Data models.Poll `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}

	var options []models.PollOption
	db.Where("poll_id = ?", created.Data.ID).Order("position ASC").Find(&options)

	pollPath := "/api/polls/" + created.Data.ID.String()
	voteBody := map[string]string{"option_id": options[0].ID.String()}

	// Authenticated vote
	w = doJSON(t, router, "POST", pollPath+"/vote", voterToken, voteBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("vote failed: %d %s", w.Code, w.Body.String())
	}

	// Duplicate vote conflicts
	w = doJSON(t, router, "POST", pollPath+"/vote", voterToken, voteBody)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 on duplicate vote, got %d", w.Code)
	}

	// Anonymous vote is allowed by default
	w = doJSON(t, router, "POST", pollPath+"/vote", "", map[string]string{"option_id": options[1].ID.String()})
	if w.Code != http.StatusCreated {
		t.Errorf("expected anonymous vote to succeed, got %d: %s", w.Code, w.Body.String())
	}

	// Results reflect both votes
	w = doJSON(t, router, "GET", pollPath+"/results", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("results failed: %d", w.Code)
	}
	var results struct {
		Data services.PollResults `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("failed to decode results: %v", err)
	}
	if results.Data.TotalVotes != 2 {
		t.Errorf("expected 2 total votes, got %d", results.Data.TotalVotes)
	}

	// Close the poll; voting then conflicts
	w = doJSON(t, router, "PUT", pollPath+"/status", creatorToken, map[string]string{"status": "closed"})
	if w.Code != http.StatusOK {
		t.Fatalf("close failed: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, "POST", pollPath+"/vote", "", map[string]string{"option_id": options[0].ID.String()})
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 voting on closed poll, got %d", w.Code)
	}
}

func TestDeletePollOwnership(t *testing.T) {
	router, db := setupTestServer(t)
	_, creatorToken := createProfileWithToken(t, db, "creator@example.com")
	_, otherToken := createProfileWithToken(t, db, "other@example.com")

	w := doJSON(t, router, "POST", "/api/polls", creatorToken, map[string]interface{}{
		"title":   "Short-lived poll",
		"options": []string{"A", "B"},
	})
	var created struct {
		Data models.Poll `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	pollPath := "/api/polls/" + created.Data.ID.String()

	w = doJSON(t, router, "DELETE", pollPath, otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for non-owner delete, got %d", w.Code)
	}

	w = doJSON(t, router, "DELETE", pollPath, creatorToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 for owner delete, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, "GET", pollPath, "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestListPollsFilters(t *testing.T) {
	router, db := setupTestServer(t)
	creator, token := createProfileWithToken(t, db, "creator@example.com")

	for i := 0; i < 3; i++ {
		w := doJSON(t, router, "POST", "/api/polls", token, map[string]interface{}{
			"title":   fmt.Sprintf("Poll %d", i),
			"options": []string{"A", "B"},
		})
		if w.Code != http.StatusCreated {
			t.Fatalf("create %d failed: %d", i, w.Code)
		}
	}

	w := doJSON(t, router, "GET", "/api/polls?status=active&creator_id="+creator.ID.String(), "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list failed: %d", w.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Count != 3 {
		t.Errorf("expected 3 polls, got %d", resp.Count)
	}

	w = doJSON(t, router, "GET", "/api/polls?status=closed", "", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("expected 0 closed polls, got %d", resp.Count)
	}
}
