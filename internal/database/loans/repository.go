// Package loans provides database operations for borrowing records.
//
// The checkout and return paths mutate a loan and its copy's status together,
// so both run inside a single transaction. Checkout claims the copy with a
// guarded UPDATE (status must still be AVAILABLE when the write lands), which
// rejects a second concurrent checkout of the same copy.
//
// This package implements the LoanStore interface defined in
// internal/circulation/service.go.
package loans

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

// Repository handles all loan database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new loans repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateOnAvailableCopy atomically flips the copy to ON_LOAN and creates the
// loan. It reports false without creating anything when the copy was not
// AVAILABLE at write time.
func (r *Repository) CreateOnAvailableCopy(loan *entities.Loan) (bool, error) {
	claimed := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Copy{}).
			Where("id = ? AND status = ?", loan.CopyID, entities.CopyStatusAvailable).
			Update("status", entities.CopyStatusOnLoan)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Lost the race or the copy changed state under us; nothing
			// written, caller re-reads the status.
			return nil
		}
		if err := tx.Create(loan).Error; err != nil {
			return err
		}
		claimed = true
		return nil
	})
	return claimed, err
}

// CloseAndReleaseCopy sets the loan's return date and flips its copy back to
// AVAILABLE in one transaction.
func (r *Repository) CloseAndReleaseCopy(loanID, copyID uint, returnedAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&entities.Loan{}).
			Where("id = ?", loanID).
			Update("return_date", returnedAt).Error
		if err != nil {
			return err
		}
		return tx.Model(&entities.Copy{}).
			Where("id = ?", copyID).
			Update("status", entities.CopyStatusAvailable).Error
	})
}

// GetByID retrieves a loan with its copy and user resolved.
func (r *Repository) GetByID(id uint) (*entities.Loan, error) {
	var loan entities.Loan
	err := r.db.Preload("Copy").Preload("Copy.Book").Preload("User").
		First(&loan, id).Error
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// GetAll returns every loan, newest first.
func (r *Repository) GetAll() ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Preload("Copy").Preload("User").
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

// GetByUserID returns all loans taken by a user.
func (r *Repository) GetByUserID(userID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Preload("Copy").Preload("User").
		Where("user_id = ?", userID).
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

// GetByCopyID returns all loans of a copy.
func (r *Repository) GetByCopyID(copyID uint) ([]entities.Loan, error) {
	var loans []entities.Loan
	err := r.db.Preload("Copy").Preload("User").
		Where("copy_id = ?", copyID).
		Order("loan_date DESC").
		Find(&loans).Error
	return loans, err
}

// Save writes all loan fields, including a nil return date. This is the
// administrative update path that can clear a return date again.
func (r *Repository) Save(loan *entities.Loan) error {
	return r.db.Save(loan).Error
}

// DeleteByID removes a loan record. Administrative use only.
func (r *Repository) DeleteByID(id uint) error {
	return r.db.Delete(&entities.Loan{}, id).Error
}
