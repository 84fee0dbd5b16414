package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/models"
	appErrors "github.com/bookhaven/backend/pkg/errors"
	"github.com/bookhaven/backend/pkg/response"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// BookHandler serves the book catalogue.
type BookHandler struct {
	db *gorm.DB
}

// NewBookHandler wires the catalogue handler.
func NewBookHandler(db *gorm.DB) (*BookHandler, error) {
	if db == nil {
		return nil, errors.New("book handler: db is required")
	}
	return &BookHandler{db: db}, nil
}

type bookRequest struct {
	Title         string `json:"title" validate:"required,max=255"`
	Author        string `json:"author" validate:"required,max=255"`
	PublishedYear int    `json:"published_year" validate:"omitempty,gte=0"`
	Genre         string `json:"genre" validate:"omitempty,max=100"`
}

// GET /api/books
func (h *BookHandler) List(c *gin.Context) {
	limit := clampLimit(parseIntQuery(c, "limit", defaultPageLimit))
	offset := parseIntQuery(c, "offset", 0)

	var total int64
	if err := h.db.Model(&models.Book{}).Count(&total).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	var books []models.Book
	if err := h.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&books).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, books, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

// GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	var book models.Book
	if err := h.db.Take(&book, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, appErrors.NewNotFound("Book not found."))
			return
		}
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Success(c, http.StatusOK, book)
}

// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	var req bookRequest
	if !bindAndValidate(c, &req) {
		return
	}

	book := models.Book{
		Title:         req.Title,
		Author:        req.Author,
		PublishedYear: req.PublishedYear,
		Genre:         req.Genre,
	}

	if err := h.db.Create(&book).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Success(c, http.StatusCreated, book)
}

// PUT /api/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := requireUUIDParam(c, "id")
	if !ok {
		return
	}

	var req bookRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result := h.db.Model(&models.Book{}).Where("id = ?", id).Updates(map[string]any{
		"title":          req.Title,
		"author":         req.Author,
		"published_year": req.PublishedYear,
		"genre":          req.Genre,
	})
	if result.Error != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Error(c, appErrors.NewNotFound("Book not found."))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Book updated successfully."})
}

// DELETE /api/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Book{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Error(c, appErrors.NewNotFound("Book not found."))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Book deleted successfully."})
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultPageLimit
	}
	if limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}
