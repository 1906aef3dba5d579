package circulation

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/librarian/internal/database/books"
	"github.com/mrlokans/librarian/internal/database/copies"
	"github.com/mrlokans/librarian/internal/database/loans"
	"github.com/mrlokans/librarian/internal/database/reservations"
	"github.com/mrlokans/librarian/internal/database/users"
	"github.com/mrlokans/librarian/internal/entities"
)

func setupTestService(t *testing.T) (*gorm.DB, *Service, func()) {
	t.Helper()

	dbPath := "./test_circulation_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Publisher{},
		&entities.Genre{},
		&entities.Book{},
		&entities.User{},
		&entities.Copy{},
		&entities.Loan{},
		&entities.Reservation{},
	)
	require.NoError(t, err)

	service := NewService(
		books.NewRepository(db),
		users.NewRepository(db),
		copies.NewRepository(db),
		loans.NewRepository(db),
		reservations.NewRepository(db),
	)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, service, cleanup
}

func createTestBook(t *testing.T, db *gorm.DB, title string) *entities.Book {
	t.Helper()
	author := &entities.Author{Name: "Author of " + title}
	require.NoError(t, db.Create(author).Error)
	book := &entities.Book{Title: title, AuthorID: author.ID}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *entities.User {
	t.Helper()
	user := &entities.User{Name: "Test User", Email: email}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCopy(t *testing.T, db *gorm.DB, bookID uint, status entities.CopyStatus) *entities.Copy {
	t.Helper()
	copy := &entities.Copy{
		BookID:    bookID,
		Barcode:   "BC-" + strings.ReplaceAll(t.Name(), "/", "-") + "-" + string(status),
		Status:    status,
		MediaType: entities.MediaTypeBook,
	}
	require.NoError(t, db.Create(copy).Error)
	return copy
}

func TestService_CreateLoan(t *testing.T) {
	t.Run("available copy produces an open loan and flips the copy", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "The Go Programming Language")
		user := createTestUser(t, db, "loan@example.com")
		copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

		dueDate := time.Now().AddDate(0, 0, 14)
		loan, err := service.CreateLoan(copy.ID, user.ID, dueDate)

		require.NoError(t, err)
		assert.Equal(t, copy.ID, loan.CopyID)
		assert.Equal(t, user.ID, loan.UserID)
		assert.Nil(t, loan.ReturnDate)
		assert.WithinDuration(t, time.Now(), loan.LoanDate, 5*time.Second)
		assert.WithinDuration(t, dueDate, loan.DueDate, time.Second)
		assert.Equal(t, user.Email, loan.User.Email)

		var updated entities.Copy
		require.NoError(t, db.First(&updated, copy.ID).Error)
		assert.Equal(t, entities.CopyStatusOnLoan, updated.Status)
	})

	t.Run("missing copy fails with not found", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		user := createTestUser(t, db, "nocopy@example.com")

		_, err := service.CreateLoan(9999, user.ID, time.Now().AddDate(0, 0, 7))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("missing user fails with not found", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Orphan Copy")
		copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

		_, err := service.CreateLoan(copy.ID, 9999, time.Now().AddDate(0, 0, 7))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unavailable copy fails naming the current status", func(t *testing.T) {
		for _, status := range []entities.CopyStatus{
			entities.CopyStatusOnLoan,
			entities.CopyStatusLost,
			entities.CopyStatusDamaged,
			entities.CopyStatusReserved,
		} {
			t.Run(string(status), func(t *testing.T) {
				db, service, cleanup := setupTestService(t)
				defer cleanup()

				book := createTestBook(t, db, "Unavailable")
				user := createTestUser(t, db, "blocked@example.com")
				copy := createTestCopy(t, db, book.ID, status)

				_, err := service.CreateLoan(copy.ID, user.ID, time.Now().AddDate(0, 0, 7))
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidState)
				assert.Contains(t, err.Error(), string(status))

				// Neither the copy nor any loan was touched
				var unchanged entities.Copy
				require.NoError(t, db.First(&unchanged, copy.ID).Error)
				assert.Equal(t, status, unchanged.Status)

				var loanCount int64
				require.NoError(t, db.Model(&entities.Loan{}).Count(&loanCount).Error)
				assert.Zero(t, loanCount)
			})
		}
	})
}

func TestService_ReturnBook(t *testing.T) {
	t.Run("open loan is closed and the copy released", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Returnable")
		user := createTestUser(t, db, "return@example.com")
		copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

		loan, err := service.CreateLoan(copy.ID, user.ID, time.Now().AddDate(0, 0, 14))
		require.NoError(t, err)

		returned, err := service.ReturnBook(loan.ID)
		require.NoError(t, err)
		require.NotNil(t, returned.ReturnDate)
		assert.WithinDuration(t, time.Now(), *returned.ReturnDate, 5*time.Second)

		var updated entities.Copy
		require.NoError(t, db.First(&updated, copy.ID).Error)
		assert.Equal(t, entities.CopyStatusAvailable, updated.Status)
	})

	t.Run("already returned loan fails invalid state", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Double Return")
		user := createTestUser(t, db, "double@example.com")
		copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

		loan, err := service.CreateLoan(copy.ID, user.ID, time.Now().AddDate(0, 0, 14))
		require.NoError(t, err)

		_, err = service.ReturnBook(loan.ID)
		require.NoError(t, err)

		_, err = service.ReturnBook(loan.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Contains(t, err.Error(), "already returned")
	})

	t.Run("missing loan fails not found", func(t *testing.T) {
		_, service, cleanup := setupTestService(t)
		defer cleanup()

		_, err := service.ReturnBook(424242)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_LoanCycle(t *testing.T) {
	// A full checkout/return cycle leaves the copy loanable again.
	db, service, cleanup := setupTestService(t)
	defer cleanup()

	book := createTestBook(t, db, "Cycled")
	user := createTestUser(t, db, "cycle@example.com")
	copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

	first, err := service.CreateLoan(copy.ID, user.ID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	_, err = service.ReturnBook(first.ID)
	require.NoError(t, err)

	second, err := service.CreateLoan(copy.ID, user.ID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	loans, err := service.ListLoans(user.ID, 0)
	require.NoError(t, err)
	assert.Len(t, loans, 2)
}

func TestService_ListLoans(t *testing.T) {
	db, service, cleanup := setupTestService(t)
	defer cleanup()

	book := createTestBook(t, db, "Filtered")
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	copyA := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)
	copyB := &entities.Copy{BookID: book.ID, Barcode: "BC-second", Status: entities.CopyStatusAvailable}
	require.NoError(t, db.Create(copyB).Error)

	_, err := service.CreateLoan(copyA.ID, alice.ID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	_, err = service.CreateLoan(copyB.ID, bob.ID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	all, err := service.ListLoans(0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	aliceLoans, err := service.ListLoans(alice.ID, 0)
	require.NoError(t, err)
	require.Len(t, aliceLoans, 1)
	assert.Equal(t, alice.ID, aliceLoans[0].UserID)

	copyBLoans, err := service.ListLoans(0, copyB.ID)
	require.NoError(t, err)
	require.Len(t, copyBLoans, 1)
	assert.Equal(t, copyB.ID, copyBLoans[0].CopyID)
}

func TestService_UpdateCopyStatus(t *testing.T) {
	t.Run("overwrites status unconditionally", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Damaged Goods")
		copy := createTestCopy(t, db, book.ID, entities.CopyStatusOnLoan)

		updated, err := service.UpdateCopyStatus(copy.ID, entities.CopyStatusDamaged)
		require.NoError(t, err)
		assert.Equal(t, entities.CopyStatusDamaged, updated.Status)
	})

	t.Run("missing copy fails not found", func(t *testing.T) {
		_, service, cleanup := setupTestService(t)
		defer cleanup()

		_, err := service.UpdateCopyStatus(777, entities.CopyStatusLost)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Bad Status")
		copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

		_, err := service.UpdateCopyStatus(copy.ID, entities.CopyStatus("MISPLACED"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestService_Reservations(t *testing.T) {
	t.Run("create starts pending with today's date", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Held Title")
		user := createTestUser(t, db, "hold@example.com")

		reservation, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusPending, reservation.Status)
		assert.WithinDuration(t, time.Now(), reservation.ReservationDate, 5*time.Second)
	})

	t.Run("missing book or user fails not found", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Half Missing")
		user := createTestUser(t, db, "half@example.com")

		_, err := service.CreateReservation(999, user.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = service.CreateReservation(book.ID, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("duplicate holds by the same user are allowed", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Popular")
		user := createTestUser(t, db, "eager@example.com")

		_, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)
		_, err = service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)

		reservations, err := service.ListReservations(user.ID)
		require.NoError(t, err)
		assert.Len(t, reservations, 2)
	})

	t.Run("cancel pending succeeds, cancel fulfilled fails", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Cancelable")
		user := createTestUser(t, db, "cancel@example.com")

		pending, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)

		cancelled, err := service.CancelReservation(pending.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusCancelled, cancelled.Status)

		fulfilled, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)
		_, err = service.FulfillReservation(fulfilled.ID)
		require.NoError(t, err)

		_, err = service.CancelReservation(fulfilled.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Contains(t, err.Error(), "cannot cancel a fulfilled reservation")
	})

	t.Run("cancel of cancelled is accepted", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Twice Cancelled")
		user := createTestUser(t, db, "twice@example.com")

		reservation, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)

		_, err = service.CancelReservation(reservation.ID)
		require.NoError(t, err)
		again, err := service.CancelReservation(reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusCancelled, again.Status)
	})

	t.Run("fulfill pending succeeds, second fulfill fails", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Fulfillable")
		user := createTestUser(t, db, "fulfill@example.com")

		reservation, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)

		fulfilled, err := service.FulfillReservation(reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusFulfilled, fulfilled.Status)

		_, err = service.FulfillReservation(reservation.ID)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidState)
		assert.Contains(t, err.Error(), "already fulfilled")
	})

	t.Run("fulfilling a cancelled reservation is not blocked", func(t *testing.T) {
		// The system this replaces only guarded against re-fulfilling;
		// a cancelled hold can still be fulfilled.
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Zombie Hold")
		user := createTestUser(t, db, "zombie@example.com")

		reservation, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)

		_, err = service.CancelReservation(reservation.ID)
		require.NoError(t, err)

		fulfilled, err := service.FulfillReservation(reservation.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationStatusFulfilled, fulfilled.Status)
	})

	t.Run("fulfilling a hold leaves copies untouched", func(t *testing.T) {
		db, service, cleanup := setupTestService(t)
		defer cleanup()

		book := createTestBook(t, db, "Copy Agnostic")
		user := createTestUser(t, db, "agnostic@example.com")
		copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

		reservation, err := service.CreateReservation(book.ID, user.ID)
		require.NoError(t, err)
		_, err = service.FulfillReservation(reservation.ID)
		require.NoError(t, err)

		var unchanged entities.Copy
		require.NoError(t, db.First(&unchanged, copy.ID).Error)
		assert.Equal(t, entities.CopyStatusAvailable, unchanged.Status)
	})
}

func TestService_DeleteLoan(t *testing.T) {
	db, service, cleanup := setupTestService(t)
	defer cleanup()

	book := createTestBook(t, db, "Deletable")
	user := createTestUser(t, db, "delete@example.com")
	copy := createTestCopy(t, db, book.ID, entities.CopyStatusAvailable)

	loan, err := service.CreateLoan(copy.ID, user.ID, time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)

	require.NoError(t, service.DeleteLoan(loan.ID))

	_, err = service.GetLoan(loan.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = service.DeleteLoan(loan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
