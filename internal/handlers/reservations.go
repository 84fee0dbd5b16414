package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bookhaven/backend/internal/models"
	appErrors "github.com/bookhaven/backend/pkg/errors"
	"github.com/bookhaven/backend/pkg/response"
)

// ReservationHandler serves restaurant reservations.
type ReservationHandler struct {
	db *gorm.DB
}

// NewReservationHandler wires the reservation handler.
func NewReservationHandler(db *gorm.DB) (*ReservationHandler, error) {
	if db == nil {
		return nil, errors.New("reservation handler: db is required")
	}
	return &ReservationHandler{db: db}, nil
}

type reservationRequest struct {
	RestaurantID  string    `json:"restaurant_id" validate:"required,uuid4"`
	ReservationAt time.Time `json:"reservation_datetime" validate:"required"`
	Guests        int       `json:"guests" validate:"required,gte=1,lte=50"`
	Status        string    `json:"status" validate:"omitempty,oneof=pending confirmed cancelled"`
}

// GET /api/reservations
func (h *ReservationHandler) List(c *gin.Context) {
	limit := clampLimit(parseIntQuery(c, "limit", defaultPageLimit))
	offset := parseIntQuery(c, "offset", 0)

	var total int64
	if err := h.db.Model(&models.Reservation{}).Count(&total).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	var reservations []models.Reservation
	if err := h.db.Limit(limit).Offset(offset).Order("reservation_datetime DESC").Find(&reservations).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reservations, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

// GET /api/reservations/:id
func (h *ReservationHandler) Get(c *gin.Context) {
	var reservation models.Reservation
	if err := h.db.Take(&reservation, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, appErrors.NewNotFound("Reservation not found."))
			return
		}
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Success(c, http.StatusOK, reservation)
}

// GET /api/reservations/user/:userID
func (h *ReservationHandler) ListByUser(c *gin.Context) {
	userID, ok := requireUUIDParam(c, "userID")
	if !ok {
		return
	}

	h.listFiltered(c, "user_id = ?", userID)
}

// GET /api/reservations/restaurant/:restaurantID
func (h *ReservationHandler) ListByRestaurant(c *gin.Context) {
	restaurantID, ok := requireUUIDParam(c, "restaurantID")
	if !ok {
		return
	}

	h.listFiltered(c, "restaurant_id = ?", restaurantID)
}

// listFiltered pages reservations matching the filter, with the same
// envelope and meta as the unfiltered listing.
func (h *ReservationHandler) listFiltered(c *gin.Context, query string, arg any) {
	limit := clampLimit(parseIntQuery(c, "limit", defaultPageLimit))
	offset := parseIntQuery(c, "offset", 0)

	var total int64
	if err := h.db.Model(&models.Reservation{}).Where(query, arg).Count(&total).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	var reservations []models.Reservation
	if err := h.db.Where(query, arg).Limit(limit).Offset(offset).Order("reservation_datetime DESC").Find(&reservations).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, reservations, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  total,
	})
}

// POST /api/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req reservationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	var restaurant models.Restaurant
	if err := h.db.Take(&restaurant, "id = ?", req.RestaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, appErrors.NewNotFound("Restaurant not found."))
			return
		}
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	reservation := models.Reservation{
		UserID:        userID,
		RestaurantID:  req.RestaurantID,
		ReservationAt: req.ReservationAt,
		Guests:        req.Guests,
		Status:        req.Status,
	}

	if err := h.db.Create(&reservation).Error; err != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(err))
		return
	}

	response.Success(c, http.StatusCreated, reservation)
}

// PUT /api/reservations/:id
func (h *ReservationHandler) Update(c *gin.Context) {
	id, ok := requireUUIDParam(c, "id")
	if !ok {
		return
	}

	var req reservationRequest
	if !bindAndValidate(c, &req) {
		return
	}

	updates := map[string]any{
		"restaurant_id":        req.RestaurantID,
		"reservation_datetime": req.ReservationAt,
		"guests":               req.Guests,
	}
	if req.Status != "" {
		updates["status"] = req.Status
	}

	result := h.db.Model(&models.Reservation{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Error(c, appErrors.NewNotFound("Reservation not found."))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Reservation updated successfully."})
}

// DELETE /api/reservations/:id
func (h *ReservationHandler) Delete(c *gin.Context) {
	result := h.db.Delete(&models.Reservation{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		response.Error(c, appErrors.ErrInternalServer.WithInternal(result.Error))
		return
	}
	if result.RowsAffected == 0 {
		response.Error(c, appErrors.NewNotFound("Reservation not found."))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Reservation deleted successfully."})
}
