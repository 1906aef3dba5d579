package circulation

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

// BookStore defines the book lookups the lifecycle needs.
type BookStore interface {
	GetByID(id uint) (*entities.Book, error)
}

// UserStore defines the user lookups the lifecycle needs.
type UserStore interface {
	GetByID(id uint) (*entities.User, error)
}

// CopyStore defines copy operations the lifecycle needs.
type CopyStore interface {
	GetByID(id uint) (*entities.Copy, error)
	UpdateStatus(id uint, status entities.CopyStatus) error
}

// LoanStore defines loan operations the lifecycle needs. The write paths
// that touch both a loan and its copy are transactional in the
// implementation (internal/database/loans).
type LoanStore interface {
	CreateOnAvailableCopy(loan *entities.Loan) (bool, error)
	CloseAndReleaseCopy(loanID, copyID uint, returnedAt time.Time) error
	GetByID(id uint) (*entities.Loan, error)
	GetAll() ([]entities.Loan, error)
	GetByUserID(userID uint) ([]entities.Loan, error)
	GetByCopyID(copyID uint) ([]entities.Loan, error)
	DeleteByID(id uint) error
}

// ReservationStore defines reservation operations the lifecycle needs.
type ReservationStore interface {
	Create(reservation *entities.Reservation) error
	GetByID(id uint) (*entities.Reservation, error)
	GetAll() ([]entities.Reservation, error)
	GetByUserID(userID uint) ([]entities.Reservation, error)
	UpdateStatus(id uint, status entities.ReservationStatus) error
	DeleteByID(id uint) error
}

// Service enforces the loan, reservation and copy-status transitions. All
// dependencies are injected; the service holds no global state.
type Service struct {
	books        BookStore
	users        UserStore
	copies       CopyStore
	loans        LoanStore
	reservations ReservationStore
	now          func() time.Time
}

// NewService creates a circulation service over the given stores.
func NewService(books BookStore, users UserStore, copies CopyStore, loans LoanStore, reservations ReservationStore) *Service {
	return &Service{
		books:        books,
		users:        users,
		copies:       copies,
		loans:        loans,
		reservations: reservations,
		now:          time.Now,
	}
}

// CreateLoan issues a loan of a copy to a user. The copy must exist, the
// user must exist and the copy must be AVAILABLE. On success the copy is
// ON_LOAN and the returned loan carries resolved associations.
//
// The copy claim and the loan insert happen in one transaction, guarded by
// an affected-rows check on the status flip, so two simultaneous checkouts
// of the same copy cannot both succeed.
func (s *Service) CreateLoan(copyID, userID uint, dueDate time.Time) (*entities.Loan, error) {
	copy, err := s.copies.GetByID(copyID)
	if err != nil {
		return nil, wrapLookupErr("copy", copyID, err)
	}

	if _, err := s.users.GetByID(userID); err != nil {
		return nil, wrapLookupErr("user", userID, err)
	}

	if copy.Status != entities.CopyStatusAvailable {
		return nil, invalidState(fmt.Sprintf("copy %d is not available for loan (current status: %s)", copyID, copy.Status))
	}

	loan := &entities.Loan{
		CopyID:   copyID,
		UserID:   userID,
		LoanDate: s.now(),
		DueDate:  dueDate,
	}

	claimed, err := s.loans.CreateOnAvailableCopy(loan)
	if err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}
	if !claimed {
		// A concurrent checkout won the copy between our read and the
		// guarded write.
		current, readErr := s.copies.GetByID(copyID)
		status := entities.CopyStatusOnLoan
		if readErr == nil {
			status = current.Status
		}
		return nil, invalidState(fmt.Sprintf("copy %d is not available for loan (current status: %s)", copyID, status))
	}

	return s.loans.GetByID(loan.ID)
}

// ReturnBook closes an open loan: sets the return date to now and flips the
// copy back to AVAILABLE. Returning an already-returned loan fails.
func (s *Service) ReturnBook(loanID uint) (*entities.Loan, error) {
	loan, err := s.loans.GetByID(loanID)
	if err != nil {
		return nil, wrapLookupErr("loan", loanID, err)
	}

	if loan.ReturnDate != nil {
		return nil, invalidState(fmt.Sprintf("loan %d already returned", loanID))
	}

	if err := s.loans.CloseAndReleaseCopy(loan.ID, loan.CopyID, s.now()); err != nil {
		return nil, fmt.Errorf("failed to return loan %d: %w", loanID, err)
	}

	return s.loans.GetByID(loanID)
}

// GetLoan retrieves a single loan.
func (s *Service) GetLoan(id uint) (*entities.Loan, error) {
	loan, err := s.loans.GetByID(id)
	if err != nil {
		return nil, wrapLookupErr("loan", id, err)
	}
	return loan, nil
}

// ListLoans returns loans filtered by user or copy. Zero filters return all
// loans; when both are given the user filter wins.
func (s *Service) ListLoans(userID, copyID uint) ([]entities.Loan, error) {
	switch {
	case userID > 0:
		return s.loans.GetByUserID(userID)
	case copyID > 0:
		return s.loans.GetByCopyID(copyID)
	default:
		return s.loans.GetAll()
	}
}

// DeleteLoan removes a loan record. Administrative use only; the copy's
// status is left untouched.
func (s *Service) DeleteLoan(id uint) error {
	if _, err := s.loans.GetByID(id); err != nil {
		return wrapLookupErr("loan", id, err)
	}
	return s.loans.DeleteByID(id)
}

// UpdateCopyStatus overwrites a copy's status. Beyond the loan-driven
// AVAILABLE/ON_LOAN toggle no transition table is enforced; librarians may
// mark any copy LOST, DAMAGED or RESERVED at will.
func (s *Service) UpdateCopyStatus(copyID uint, status entities.CopyStatus) (*entities.Copy, error) {
	if !entities.IsValidCopyStatus(status) {
		return nil, invalidState(fmt.Sprintf("unknown copy status %q", status))
	}

	if _, err := s.copies.GetByID(copyID); err != nil {
		return nil, wrapLookupErr("copy", copyID, err)
	}

	if err := s.copies.UpdateStatus(copyID, status); err != nil {
		return nil, fmt.Errorf("failed to update copy %d status: %w", copyID, err)
	}

	return s.copies.GetByID(copyID)
}

// CreateReservation places a PENDING hold on a book for a user. Nothing
// prevents the same user from holding the same book twice; the source system
// allowed it and callers rely on listing to spot duplicates.
func (s *Service) CreateReservation(bookID, userID uint) (*entities.Reservation, error) {
	if _, err := s.books.GetByID(bookID); err != nil {
		return nil, wrapLookupErr("book", bookID, err)
	}
	if _, err := s.users.GetByID(userID); err != nil {
		return nil, wrapLookupErr("user", userID, err)
	}

	reservation := &entities.Reservation{
		BookID:          bookID,
		UserID:          userID,
		ReservationDate: s.now(),
		Status:          entities.ReservationStatusPending,
	}

	if err := s.reservations.Create(reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	return s.reservations.GetByID(reservation.ID)
}

// CancelReservation moves a reservation to CANCELLED. A FULFILLED
// reservation cannot be cancelled; cancelling an already-cancelled one is
// accepted as a no-op transition.
func (s *Service) CancelReservation(id uint) (*entities.Reservation, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, wrapLookupErr("reservation", id, err)
	}

	if reservation.Status == entities.ReservationStatusFulfilled {
		return nil, invalidState("cannot cancel a fulfilled reservation")
	}

	if err := s.reservations.UpdateStatus(id, entities.ReservationStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation %d: %w", id, err)
	}

	return s.reservations.GetByID(id)
}

// FulfillReservation moves a reservation to FULFILLED. Only a second fulfill
// is rejected; a CANCELLED reservation can still be fulfilled, matching the
// behavior of the system this one replaces.
func (s *Service) FulfillReservation(id uint) (*entities.Reservation, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, wrapLookupErr("reservation", id, err)
	}

	if reservation.Status == entities.ReservationStatusFulfilled {
		return nil, invalidState(fmt.Sprintf("reservation %d already fulfilled", id))
	}

	if err := s.reservations.UpdateStatus(id, entities.ReservationStatusFulfilled); err != nil {
		return nil, fmt.Errorf("failed to fulfill reservation %d: %w", id, err)
	}

	return s.reservations.GetByID(id)
}

// GetReservation retrieves a single reservation.
func (s *Service) GetReservation(id uint) (*entities.Reservation, error) {
	reservation, err := s.reservations.GetByID(id)
	if err != nil {
		return nil, wrapLookupErr("reservation", id, err)
	}
	return reservation, nil
}

// ListReservations returns reservations, optionally filtered by user.
func (s *Service) ListReservations(userID uint) ([]entities.Reservation, error) {
	if userID > 0 {
		return s.reservations.GetByUserID(userID)
	}
	return s.reservations.GetAll()
}

// DeleteReservation removes a reservation record. Administrative use only.
func (s *Service) DeleteReservation(id uint) error {
	if _, err := s.reservations.GetByID(id); err != nil {
		return wrapLookupErr("reservation", id, err)
	}
	return s.reservations.DeleteByID(id)
}

func wrapLookupErr(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	return fmt.Errorf("failed to load %s %d: %w", entity, id, err)
}
