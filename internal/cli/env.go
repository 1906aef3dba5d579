package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mrlokans/librarian/internal/circulation"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/database/books"
	"github.com/mrlokans/librarian/internal/database/catalog"
	"github.com/mrlokans/librarian/internal/database/copies"
	"github.com/mrlokans/librarian/internal/database/loans"
	"github.com/mrlokans/librarian/internal/database/reservations"
	"github.com/mrlokans/librarian/internal/database/users"
)

// env wires the repositories and the circulation service over one database
// connection for a CLI command's lifetime.
type env struct {
	db           *database.Database
	books        *books.Repository
	authors      *catalog.AuthorsRepository
	publishers   *catalog.PublishersRepository
	genres       *catalog.GenresRepository
	users        *users.Repository
	copies       *copies.Repository
	loans        *loans.Repository
	reservations *reservations.Repository
	circulation  *circulation.Service
}

func newEnv(dbPath string) (*env, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	e := &env{
		db:           db,
		books:        books.NewRepository(db.DB),
		authors:      catalog.NewAuthorsRepository(db.DB),
		publishers:   catalog.NewPublishersRepository(db.DB),
		genres:       catalog.NewGenresRepository(db.DB),
		users:        users.NewRepository(db.DB),
		copies:       copies.NewRepository(db.DB),
		loans:        loans.NewRepository(db.DB),
		reservations: reservations.NewRepository(db.DB),
	}
	e.circulation = circulation.NewService(e.books, e.users, e.copies, e.loans, e.reservations)
	return e, nil
}

func (e *env) Close() error {
	return e.db.Close()
}
