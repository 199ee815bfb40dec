package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pollboard/internal/auth"
	"pollboard/internal/cache"
	"pollboard/internal/repository"
	"pollboard/internal/services"
)

// PollHandler handles poll lifecycle, voting and results endpoints
type PollHandler struct {
	polls   *services.PollService
	votes   *services.VoteService
	repo    *repository.Repository
	results *cache.ResultsCache
}

func NewPollHandler(polls *services.PollService, votes *services.VoteService, repo *repository.Repository, results *cache.ResultsCache) *PollHandler {
	return &PollHandler{polls: polls, votes: votes, repo: repo, results: results}
}

// GetPolls returns polls with optional filtering
// GET /api/polls
func (h *PollHandler) GetPolls(c *gin.Context) {
	limitInt, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offsetInt, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := repository.PollFilter{
		Status: c.Query("status"),
		Limit:  limitInt,
		Offset: offsetInt,
	}

	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		filter.CategoryID = &id
	}

	if raw := c.Query("creator_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator_id"})
			return
		}
		filter.CreatorID = &id
	}

	polls, err := h.polls.ListPolls(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    polls,
		"count":   len(polls),
	})
}

// GetPoll returns a specific poll with its options. When the caller is
// authenticated the response also carries hasVoted and the chosen options.
// GET /api/polls/:id
func (h *PollHandler) GetPoll(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	var viewerID *uuid.UUID
	if userID, ok := auth.GetUserID(c); ok {
		viewerID = &userID
	}

	poll, err := h.polls.GetPoll(c.Request.Context(), pollID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    poll,
	})
}

// CreatePoll creates a new poll with its options
// POST /api/polls
func (h *PollHandler) CreatePoll(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Title              string     `json:"title" binding:"required"`
		Description        string     `json:"description"`
		CategoryID         *string    `json:"category_id"`
		Options            []string   `json:"options" binding:"required"`
		AllowAnonymous     *bool      `json:"allow_anonymous"`
		AllowMultipleVotes bool       `json:"allow_multiple_votes"`
		ExpiresAt          *time.Time `json:"expires_at"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreatePollInput{
		Title:              req.Title,
		Description:        req.Description,
		Options:            req.Options,
		AllowAnonymous:     req.AllowAnonymous,
		AllowMultipleVotes: req.AllowMultipleVotes,
		ExpiresAt:          req.ExpiresAt,
	}

	if req.CategoryID != nil && *req.CategoryID != "" {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		input.CategoryID = &categoryID
	}

	poll, err := h.polls.CreatePoll(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    poll,
	})
}

// Vote records one vote on a poll option. Anonymous voters are accepted
// when the poll allows them.
// POST /api/polls/:id/vote
func (h *PollHandler) Vote(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	var req struct {
		OptionID string `json:"option_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	optionID, err := uuid.Parse(req.OptionID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid option_id"})
		return
	}

	voter := services.VoterContext{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if userID, ok := auth.GetUserID(c); ok {
		voter.UserID = &userID
	}

	vote, err := h.votes.CastVote(c.Request.Context(), voter, pollID, optionID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.results.Invalidate(c.Request.Context(), pollID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    vote,
	})
}

// GetResults returns the aggregated vote distribution for a poll
// GET /api/polls/:id/results
func (h *PollHandler) GetResults(c *gin.Context) {
	pollID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	var cached services.PollResults
	if h.results.GetResults(c.Request.Context(), pollID, &cached) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    cached,
		})
		return
	}

	poll, err := h.polls.GetPoll(c.Request.Context(), pollID, nil)
	if err != nil {
		respondError(c, err)
		return
	}

	results := services.ComputeResults(poll.Options, poll.TotalVotes)
	h.results.SetResults(c.Request.Context(), pollID, results)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    results,
	})
}

// UpdateStatus moves a poll forward through its lifecycle (owner only)
// PUT /api/polls/:id/status
func (h *PollHandler) UpdateStatus(c *gin.Context) {
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

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poll, err := h.polls.UpdateStatus(c.Request.Context(), userID, pollID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	h.results.Invalidate(c.Request.Context(), pollID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    poll,
	})
}

// DeletePoll removes a poll (owner only)
// DELETE /api/polls/:id
func (h *PollHandler) DeletePoll(c *gin.Context) {
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

	if err := h.polls.DeletePoll(c.Request.Context(), userID, pollID); err != nil {
		respondError(c, err)
		return
	}

	h.results.Invalidate(c.Request.Context(), pollID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Poll deleted",
	})
}
