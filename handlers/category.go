package handlers

import (
	"net/http"

	"rentatool-backend/categorytree"
	"rentatool-backend/dtos"
	"rentatool-backend/repositories"
	"rentatool-backend/utils"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	Categories repositories.CategoryStore
}

// GetCategories lists all categories. The public nav wants name-ascending
// for stable menus; the admin list asks for ?sort=newest.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	sort := repositories.CategorySortByName
	if c.Query("sort") == "newest" {
		sort = repositories.CategorySortNewest
	}

	categories, err := h.Categories.List(c.Request.Context(), sort)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategoryTree returns the nested forest for hierarchical navigation and
// category pickers.
func (h *CategoryHandler) GetCategoryTree(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context(), repositories.CategorySortByName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categorytree.Build(categories))
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.Categories.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dtos.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	category, err := h.Categories.Create(c.Request.Context(), req.Name, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	var req dtos.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	category, err := h.Categories.Update(c.Request.Context(), c.Param("id"), req.Name, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
