package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/circulation"
	"github.com/mrlokans/librarian/internal/database"
	"github.com/mrlokans/librarian/internal/metadata"
)

// RouterConfig carries all router dependencies, improving testability and
// reducing parameter count.
type RouterConfig struct {
	Database       *database.Database
	Circulation    *circulation.Service
	BookStore      BookStore
	AuthorStore    AuthorStore
	PublisherStore PublisherStore
	GenreStore     GenreStore
	UserStore      UserStore
	CopyStore      CopyStore
	Importer       *metadata.Importer
	Version        string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Database, cfg.Version)
	books := NewBooksController(cfg.BookStore)
	authors := NewAuthorsController(cfg.AuthorStore)
	publishers := NewPublishersController(cfg.PublisherStore)
	genres := NewGenresController(cfg.GenreStore)
	users := NewUsersController(cfg.UserStore)
	copies := NewCopiesController(cfg.CopyStore, cfg.Circulation)
	loans := NewLoansController(cfg.Circulation)
	reservations := NewReservationsController(cfg.Circulation)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Catalog endpoints
	router.GET("/api/books", books.ListBooks)
	router.GET("/api/books/:id", books.GetBook)
	router.POST("/api/books", books.CreateBook)
	router.PUT("/api/books/:id", books.UpdateBook)
	router.DELETE("/api/books/:id", books.DeleteBook)

	router.GET("/api/authors", authors.ListAuthors)
	router.GET("/api/authors/:id", authors.GetAuthor)
	router.POST("/api/authors", authors.CreateAuthor)
	router.DELETE("/api/authors/:id", authors.DeleteAuthor)

	router.GET("/api/publishers", publishers.ListPublishers)
	router.GET("/api/publishers/:id", publishers.GetPublisher)
	router.POST("/api/publishers", publishers.CreatePublisher)
	router.DELETE("/api/publishers/:id", publishers.DeletePublisher)

	router.GET("/api/genres", genres.ListGenres)
	router.GET("/api/genres/:id", genres.GetGenre)
	router.POST("/api/genres", genres.CreateGenre)
	router.DELETE("/api/genres/:id", genres.DeleteGenre)

	// Member endpoints
	router.GET("/api/users", users.ListUsers)
	router.GET("/api/users/:id", users.GetUser)
	router.POST("/api/users", users.CreateUser)
	router.DELETE("/api/users/:id", users.DeleteUser)

	// Copy endpoints
	router.GET("/api/copies", copies.ListCopies)
	router.GET("/api/copies/:id", copies.GetCopy)
	router.POST("/api/copies", copies.CreateCopy)
	router.PATCH("/api/copies/:id/status", copies.UpdateCopyStatus)
	router.DELETE("/api/copies/:id", copies.DeleteCopy)

	// Circulation endpoints
	router.POST("/api/loans", loans.CreateLoan)
	router.GET("/api/loans", loans.ListLoans)
	router.GET("/api/loans/:id", loans.GetLoan)
	router.POST("/api/loans/:id/return", loans.ReturnLoan)
	router.DELETE("/api/loans/:id", loans.DeleteLoan)

	router.POST("/api/reservations", reservations.CreateReservation)
	router.GET("/api/reservations", reservations.ListReservations)
	router.GET("/api/reservations/:id", reservations.GetReservation)
	router.POST("/api/reservations/:id/cancel", reservations.CancelReservation)
	router.POST("/api/reservations/:id/fulfill", reservations.FulfillReservation)
	router.DELETE("/api/reservations/:id", reservations.DeleteReservation)

	// Import endpoints
	if cfg.Importer != nil {
		importController := NewImportController(cfg.Importer)
		router.POST("/api/books/import/openlibrary", importController.ImportByISBN)
	}

	return router
}
