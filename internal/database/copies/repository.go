// Package copies provides database operations for physical copies.
//
// This package implements the CopyStore interface defined in
// internal/circulation/service.go.
//
// # Interface Implementation
//
//	var _ circulation.CopyStore = (*Repository)(nil)
package copies

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

// Repository handles all copy database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new copies repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save persists a copy, generating a barcode when none was assigned.
func (r *Repository) Save(copy *entities.Copy) error {
	if copy.Barcode == "" {
		copy.Barcode = uuid.NewString()
	}
	if copy.Status == "" {
		copy.Status = entities.CopyStatusAvailable
	}
	if copy.MediaType == "" {
		copy.MediaType = entities.MediaTypeBook
	}
	return r.db.Save(copy).Error
}

// GetByID retrieves a copy with its book resolved.
func (r *Repository) GetByID(id uint) (*entities.Copy, error) {
	var copy entities.Copy
	err := r.db.Preload("Book").Preload("Book.Author").First(&copy, id).Error
	if err != nil {
		return nil, err
	}
	return &copy, nil
}

// GetByBarcode retrieves a copy by its barcode.
func (r *Repository) GetByBarcode(barcode string) (*entities.Copy, error) {
	var copy entities.Copy
	err := r.db.Preload("Book").Where("barcode = ?", barcode).First(&copy).Error
	if err != nil {
		return nil, err
	}
	return &copy, nil
}

// GetAll returns every copy.
func (r *Repository) GetAll() ([]entities.Copy, error) {
	var copies []entities.Copy
	err := r.db.Preload("Book").Order("id ASC").Find(&copies).Error
	return copies, err
}

// GetByBookID returns all copies of a book.
func (r *Repository) GetByBookID(bookID uint) ([]entities.Copy, error) {
	var copies []entities.Copy
	err := r.db.Where("book_id = ?", bookID).Order("id ASC").Find(&copies).Error
	return copies, err
}

// UpdateStatus unconditionally overwrites the copy's status.
func (r *Repository) UpdateStatus(id uint, status entities.CopyStatus) error {
	return r.db.Model(&entities.Copy{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// DeleteByID removes a copy. A copy referenced by an active loan (one with a
// nil return date) is never deleted.
func (r *Repository) DeleteByID(id uint) error {
	var active int64
	err := r.db.Model(&entities.Loan{}).
		Where("copy_id = ? AND return_date IS NULL", id).
		Count(&active).Error
	if err != nil {
		return err
	}
	if active > 0 {
		return fmt.Errorf("copy %d has an active loan", id)
	}
	return r.db.Delete(&entities.Copy{}, id).Error
}
