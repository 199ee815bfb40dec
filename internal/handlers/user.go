package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pollboard/internal/auth"
	"pollboard/internal/services"
)

// UserHandler handles per-user activity endpoints
type UserHandler struct {
	users       *services.UserService
	authService *services.AuthService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{users: users, authService: authService}
}

// GetStats returns the caller's activity summary
// GET /api/user/stats
func (h *UserHandler) GetStats(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	stats, err := h.users.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}

// GetVotingHistory returns the caller's past votes, paginated
// GET /api/user/votes
func (h *UserHandler) GetVotingHistory(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limitInt, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	offsetInt, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	history, err := h.users.GetVotingHistory(c.Request.Context(), userID, limitInt, offsetInt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch voting history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}

// GetBookmarks returns the caller's bookmarked polls
// GET /api/user/bookmarks
func (h *UserHandler) GetBookmarks(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookmarks, err := h.users.ListBookmarks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmarks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    bookmarks,
		"count":   len(bookmarks),
	})
}

// BookmarkPoll saves a poll for the caller
// POST /api/polls/:id/bookmark
func (h *UserHandler) BookmarkPoll(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	bookmark, err := h.users.BookmarkPoll(c.Request.Context(), userID, pollID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    bookmark,
	})
}

// RemoveBookmark deletes the caller's bookmark on a poll
// DELETE /api/polls/:id/bookmark
func (h *UserHandler) RemoveBookmark(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	if err := h.users.RemoveBookmark(c.Request.Context(), userID, pollID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Bookmark removed",
	})
}

// UpdateProfile applies a partial update to the caller's profile
// PUT /api/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		FullName  *string `json:"full_name"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.authService.UpdateProfile(c.Request.Context(), userID, services.ProfileUpdate{
		FullName:  req.FullName,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}
