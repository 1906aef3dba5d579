package loans

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

	"github.com/mrlokans/librarian/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	t.Helper()

	dbPath := "./test_loans_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
		&entities.User{},
		&entities.Copy{},
		&entities.Loan{},
	)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, NewRepository(db), cleanup
}

func seedCopyAndUser(t *testing.T, db *gorm.DB, status entities.CopyStatus) (*entities.Copy, *entities.User) {
	t.Helper()

	book := &entities.Book{Title: "Seeded Book"}
	require.NoError(t, db.Create(book).Error)

	copy := &entities.Copy{
		BookID:  book.ID,
		Barcode: "BC-" + strings.ReplaceAll(t.Name(), "/", "-"),
		Status:  status,
	}
	require.NoError(t, db.Create(copy).Error)

	user := &entities.User{Name: "Reader", Email: t.Name() + "@example.com"}
	require.NoError(t, db.Create(user).Error)

	return copy, user
}

func TestRepository_CreateOnAvailableCopy(t *testing.T) {
	t.Run("claims an available copy", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		copy, user := seedCopyAndUser(t, db, entities.CopyStatusAvailable)

		loan := &entities.Loan{
			CopyID:   copy.ID,
			UserID:   user.ID,
			LoanDate: time.Now(),
			DueDate:  time.Now().AddDate(0, 0, 14),
		}

		claimed, err := repo.CreateOnAvailableCopy(loan)
		require.NoError(t, err)
		assert.True(t, claimed)
		assert.NotZero(t, loan.ID)

		var updated entities.Copy
		require.NoError(t, db.First(&updated, copy.ID).Error)
		assert.Equal(t, entities.CopyStatusOnLoan, updated.Status)
	})

	t.Run("refuses a copy that is not available", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		copy, user := seedCopyAndUser(t, db, entities.CopyStatusLost)

		loan := &entities.Loan{
			CopyID:   copy.ID,
			UserID:   user.ID,
			LoanDate: time.Now(),
			DueDate:  time.Now().AddDate(0, 0, 14),
		}

		claimed, err := repo.CreateOnAvailableCopy(loan)
		require.NoError(t, err)
		assert.False(t, claimed)

		// Nothing was written
		var count int64
		require.NoError(t, db.Model(&entities.Loan{}).Count(&count).Error)
		assert.Zero(t, count)

		var unchanged entities.Copy
		require.NoError(t, db.First(&unchanged, copy.ID).Error)
		assert.Equal(t, entities.CopyStatusLost, unchanged.Status)
	})

	t.Run("second claim of the same copy loses", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		copy, user := seedCopyAndUser(t, db, entities.CopyStatusAvailable)

		first := &entities.Loan{CopyID: copy.ID, UserID: user.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 7)}
		claimed, err := repo.CreateOnAvailableCopy(first)
		require.NoError(t, err)
		require.True(t, claimed)

		second := &entities.Loan{CopyID: copy.ID, UserID: user.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 7)}
		claimed, err = repo.CreateOnAvailableCopy(second)
		require.NoError(t, err)
		assert.False(t, claimed)

		var count int64
		require.NoError(t, db.Model(&entities.Loan{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})
}

func TestRepository_CloseAndReleaseCopy(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	copy, user := seedCopyAndUser(t, db, entities.CopyStatusAvailable)

	loan := &entities.Loan{CopyID: copy.ID, UserID: user.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 14)}
	claimed, err := repo.CreateOnAvailableCopy(loan)
	require.NoError(t, err)
	require.True(t, claimed)

	returnedAt := time.Now()
	require.NoError(t, repo.CloseAndReleaseCopy(loan.ID, copy.ID, returnedAt))

	closed, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	require.NotNil(t, closed.ReturnDate)
	assert.WithinDuration(t, returnedAt, *closed.ReturnDate, time.Second)

	var released entities.Copy
	require.NoError(t, db.First(&released, copy.ID).Error)
	assert.Equal(t, entities.CopyStatusAvailable, released.Status)
}

func TestRepository_GetByID(t *testing.T) {
	t.Run("resolves copy, book and user", func(t *testing.T) {
		db, repo, cleanup := setupTestDB(t)
		defer cleanup()

		copy, user := seedCopyAndUser(t, db, entities.CopyStatusAvailable)

		loan := &entities.Loan{CopyID: copy.ID, UserID: user.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 14)}
		claimed, err := repo.CreateOnAvailableCopy(loan)
		require.NoError(t, err)
		require.True(t, claimed)

		found, err := repo.GetByID(loan.ID)
		require.NoError(t, err)
		assert.Equal(t, copy.Barcode, found.Copy.Barcode)
		assert.Equal(t, "Seeded Book", found.Copy.Book.Title)
		assert.Equal(t, user.Email, found.User.Email)
	})

	t.Run("missing loan yields record not found", func(t *testing.T) {
		_, repo, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := repo.GetByID(12345)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestRepository_Filters(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	copy, alice := seedCopyAndUser(t, db, entities.CopyStatusAvailable)
	bob := &entities.User{Name: "Bob", Email: "bob-filters@example.com"}
	require.NoError(t, db.Create(bob).Error)

	aliceLoan := &entities.Loan{CopyID: copy.ID, UserID: alice.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 7)}
	claimed, err := repo.CreateOnAvailableCopy(aliceLoan)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.CloseAndReleaseCopy(aliceLoan.ID, copy.ID, time.Now()))

	bobLoan := &entities.Loan{CopyID: copy.ID, UserID: bob.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 7)}
	claimed, err = repo.CreateOnAvailableCopy(bobLoan)
	require.NoError(t, err)
	require.True(t, claimed)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byUser, err := repo.GetByUserID(bob.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)
	assert.Equal(t, bob.ID, byUser[0].UserID)

	byCopy, err := repo.GetByCopyID(copy.ID)
	require.NoError(t, err)
	assert.Len(t, byCopy, 2)
}

func TestRepository_Save_ClearsReturnDate(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	copy, user := seedCopyAndUser(t, db, entities.CopyStatusAvailable)

	loan := &entities.Loan{CopyID: copy.ID, UserID: user.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 7)}
	claimed, err := repo.CreateOnAvailableCopy(loan)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.CloseAndReleaseCopy(loan.ID, copy.ID, time.Now()))

	reopened, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	reopened.ReturnDate = nil
	require.NoError(t, repo.Save(reopened))

	found, err := repo.GetByID(loan.ID)
	require.NoError(t, err)
	assert.Nil(t, found.ReturnDate)

	var count int64
	require.NoError(t, db.Model(&entities.Loan{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRepository_DeleteByID(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	copy, user := seedCopyAndUser(t, db, entities.CopyStatusAvailable)

	loan := &entities.Loan{CopyID: copy.ID, UserID: user.ID, LoanDate: time.Now(), DueDate: time.Now().AddDate(0, 0, 7)}
	claimed, err := repo.CreateOnAvailableCopy(loan)
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, repo.DeleteByID(loan.ID))

	_, err = repo.GetByID(loan.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
