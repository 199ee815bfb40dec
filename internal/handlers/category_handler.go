package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pollboard/internal/repository"
)

// CategoryHandler serves the category lookup table
type CategoryHandler struct {
	repo *repository.Repository
}

func NewCategoryHandler(repo *repository.Repository) *CategoryHandler {
	return &CategoryHandler{repo: repo}
}

// GetCategories returns all categories ordered by name
// GET /api/categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}
