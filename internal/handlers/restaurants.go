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

// RestaurantHandler serves restaurant records.
type RestaurantHandler struct {
	db *gorm.DB
}

// NewRestaurantHandler wires the restaurant handler.
func NewRestaurantHandler(db *gorm.DB) (*RestaurantHandler, error) {
	if db == nil {
		return nil, errors.New("restaurant handler: db is required")
	}
	return &RestaurantHandler{db: db}, nil
}

type restaurantRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"omitempty,max=512"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

// GET /api/restaurants
func (h *RestaurantHandler) List(c *gin.Context) {
	limit := clampLimit(parseIntQuery(c, "limit", defaultPageLimit))
	offset := parseIntQuery(c, "offset", 0)

	var total int64
	if err := h.db.Model(&models.Restaurant{}).Count(&total).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	var restaurants []models.Restaurant
	if err := h.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&restaurants).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, restaurants, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

// GET /api/restaurants/:id
func (h *RestaurantHandler) Get(c *gin.Context) {
	var restaurant models.Restaurant
	if err := h.db.Take(&restaurant, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, appErrors.NewNotFound("Restaurant not found."))
			return
		}
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Success(c, http.StatusOK, restaurant)
}

// POST /api/restaurants
func (h *RestaurantHandler) Create(c *gin.Context) {
	var req restaurantRequest
	if !bindAndValidate(c, &req) {
		return
	}

	restaurant := models.Restaurant{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}

	if err := h.db.Create(&restaurant).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Success(c, http.StatusCreated, restaurant)
}

// PUT /api/restaurants/:id
func (h *RestaurantHandler) Update(c *gin.Context) {
	id, ok := requireUUIDParam(c, "id")
	if !ok {
		return
	}

	var req restaurantRequest
	if !bindAndValidate(c, &req) {
		return
	}

	result := h.db.Model(&models.Restaurant{}).Where("id = ?", id).Updates(map[string]any{
		"name":    req.Name,
		"address": req.Address,
		"phone":   req.Phone,
	})
	if result.Error != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Error(c, appErrors.NewNotFound("Restaurant not found."))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Restaurant updated successfully."})
}

// DELETE /api/restaurants/:id
func (h *RestaurantHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Restaurant{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Error(c, appErrors.NewNotFound("Restaurant not found."))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Restaurant deleted successfully."})
}
