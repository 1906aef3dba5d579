package entities

import (
	"time"

	"gorm.io/gorm"
)

type CopyStatus string

const (
	CopyStatusAvailable CopyStatus = "AVAILABLE"
	CopyStatusOnLoan    CopyStatus = "ON_LOAN"
	CopyStatusLost      CopyStatus = "LOST"
	CopyStatusDamaged   CopyStatus = "DAMAGED"
	CopyStatusReserved  CopyStatus = "RESERVED"
)

var validCopyStatuses = map[CopyStatus]bool{
	CopyStatusAvailable: true,
	CopyStatusOnLoan:    true,
	CopyStatusLost:      true,
	CopyStatusDamaged:   true,
	CopyStatusReserved:  true,
}

// IsValidCopyStatus reports whether status is one of the known copy states.
func IsValidCopyStatus(status CopyStatus) bool {
	return validCopyStatuses[status]
}

type MediaType string

const (
	MediaTypeBook     MediaType = "BOOK"
	MediaTypeDVD      MediaType = "DVD"
	MediaTypeMagazine MediaType = "MAGAZINE"
)

var validMediaTypes = map[MediaType]bool{
	MediaTypeBook:     true,
	MediaTypeDVD:      true,
	MediaTypeMagazine: true,
}

// IsValidMediaType reports whether mediaType is one of the known media kinds.
func IsValidMediaType(mediaType MediaType) bool {
	return validMediaTypes[mediaType]
}

// Copy is a physical, loanable instance of a book. Its status mirrors the
// loan cycle: AVAILABLE until checked out, ON_LOAN while a loan with a nil
// return date references it, AVAILABLE again after return. LOST, DAMAGED and
// RESERVED are set manually by a librarian.
type Copy struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	BookID    uint           `gorm:"index" json:"book_id"`
	Barcode   string         `gorm:"uniqueIndex;size:64" json:"barcode,omitempty"`
	Status    CopyStatus     `gorm:"size:20;default:'AVAILABLE'" json:"status"`
	MediaType MediaType      `gorm:"size:20;default:'BOOK'" json:"media_type"`
	Book      Book           `gorm:"foreignKey:BookID" json:"book,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

// Loan links a Copy and a User for one borrowing. A nil ReturnDate means the
// copy is still out.
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CopyID     uint       `gorm:"index" json:"copy_id"`
	UserID     uint       `gorm:"index" json:"user_id"`
	LoanDate   time.Time  `json:"loan_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	Copy       Copy       `gorm:"foreignKey:CopyID" json:"copy,omitempty"`
	User       User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusFulfilled ReservationStatus = "FULFILLED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
)

// Reservation is a hold request on a Book (not a specific Copy) by a User.
// It starts PENDING and moves to FULFILLED or CANCELLED. Fulfilling a
// reservation has no effect on any copy's status because the hold targets
// the title, not a physical item.
type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	BookID          uint              `gorm:"index" json:"book_id"`
	UserID          uint              `gorm:"index" json:"user_id"`
	ReservationDate time.Time         `json:"reservation_date"`
	Status          ReservationStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	Book            Book              `gorm:"foreignKey:BookID" json:"book,omitempty"`
	User            User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
