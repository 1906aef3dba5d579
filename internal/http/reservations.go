package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/circulation"
)

type ReservationsController struct {
	service *circulation.Service
}

func NewReservationsController(service *circulation.Service) *ReservationsController {
	return &ReservationsController{service: service}
}

type reservationRequest struct {
	BookID uint `json:"book_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
}

// CreateReservation places a hold on a book for a user.
// POST /api/reservations
func (rc *ReservationsController) CreateReservation(c *gin.Context) {
	var req reservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	reservation, err := rc.service.CreateReservation(req.BookID, req.UserID)
	if err != nil {
		respondDomainError(c, err, "create reservation")
		return
	}
	respondCreated(c, reservation)
}

// ListReservations returns reservations, optionally filtered by ?user_id=.
// GET /api/reservations
func (rc *ReservationsController) ListReservations(c *gin.Context) {
	reservations, err := rc.service.ListReservations(parseQueryID(c, "user_id"))
	if err != nil {
		respondInternalError(c, err, "list reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations, "count": len(reservations)})
}

// GetReservation returns a single reservation.
// GET /api/reservations/:id
func (rc *ReservationsController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.service.GetReservation(id)
	if err != nil {
		respondDomainError(c, err, "get reservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CancelReservation moves a reservation to CANCELLED.
// POST /api/reservations/:id/cancel
func (rc *ReservationsController) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.service.CancelReservation(id)
	if err != nil {
		respondDomainError(c, err, "cancel reservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// FulfillReservation moves a reservation to FULFILLED.
// POST /api/reservations/:id/fulfill
func (rc *ReservationsController) FulfillReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.service.FulfillReservation(id)
	if err != nil {
		respondDomainError(c, err, "fulfill reservation")
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// DeleteReservation removes a reservation record (administrative).
// DELETE /api/reservations/:id
func (rc *ReservationsController) DeleteReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.service.DeleteReservation(id); err != nil {
		respondDomainError(c, err, "delete reservation")
		return
	}
	respondSuccess(c, "reservation deleted")
}
