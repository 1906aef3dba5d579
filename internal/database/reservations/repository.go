// Package reservations provides database operations for book holds.
//
// This package implements the ReservationStore interface defined in
// internal/circulation/service.go.
package reservations

import (
	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

// Repository handles all reservation database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reservations repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new reservation.
func (r *Repository) Create(reservation *entities.Reservation) error {
	return r.db.Create(reservation).Error
}

// GetByID retrieves a reservation with its book and user resolved.
func (r *Repository) GetByID(id uint) (*entities.Reservation, error) {
	var reservation entities.Reservation
	err := r.db.Preload("Book").Preload("Book.Author").Preload("User").
		First(&reservation, id).Error
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetAll returns every reservation, newest first.
func (r *Repository) GetAll() ([]entities.Reservation, error) {
	var reservations []entities.Reservation
	err := r.db.Preload("Book").Preload("User").
		Order("reservation_date DESC").
		Find(&reservations).Error
	return reservations, err
}

// GetByUserID returns all reservations placed by a user.
func (r *Repository) GetByUserID(userID uint) ([]entities.Reservation, error) {
	var reservations []entities.Reservation
	err := r.db.Preload("Book").
		Where("user_id = ?", userID).
		Order("reservation_date DESC").
		Find(&reservations).Error
	return reservations, err
}

// GetByBookID returns all reservations placed on a book.
func (r *Repository) GetByBookID(bookID uint) ([]entities.Reservation, error) {
	var reservations []entities.Reservation
	err := r.db.Preload("User").
		Where("book_id = ?", bookID).
		Order("reservation_date ASC").
		Find(&reservations).Error
	return reservations, err
}

// UpdateStatus overwrites the reservation's status.
func (r *Repository) UpdateStatus(id uint, status entities.ReservationStatus) error {
	return r.db.Model(&entities.Reservation{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteByID removes a reservation. Administrative use only.
func (r *Repository) DeleteByID(id uint) error {
	return r.db.Delete(&entities.Reservation{}, id).Error
}
