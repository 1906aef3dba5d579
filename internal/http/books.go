package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/entities"
)

// BookStore defines database operations for book management.
type BookStore interface {
	Save(book *entities.Book) error
	GetByID(id uint) (*entities.Book, error)
	GetAll() ([]entities.Book, error)
	Search(query string) ([]entities.Book, error)
	DeleteByID(id uint) error
}

type BooksController struct {
	store BookStore
}

func NewBooksController(store BookStore) *BooksController {
	return &BooksController{store: store}
}

type bookRequest struct {
	Title           string `json:"title" binding:"required"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	AuthorID        uint   `json:"author_id" binding:"required"`
	PublisherID     uint   `json:"publisher_id"`
	GenreID         uint   `json:"genre_id"`
}

// ListBooks returns all books, or title matches when ?q= is given.
// GET /api/books
func (bc *BooksController) ListBooks(c *gin.Context) {
	var (
		books []entities.Book
		err   error
	)
	if query := c.Query("q"); query != "" {
		books, err = bc.store.Search(query)
	} else {
		books, err = bc.store.GetAll()
	}
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": books, "count": len(books)})
}

// GetBook returns a single book.
// GET /api/books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook adds a book to the catalog.
// POST /api/books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book := &entities.Book{
		Title:           req.Title,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		AuthorID:        req.AuthorID,
		PublisherID:     req.PublisherID,
		GenreID:         req.GenreID,
	}
	if err := bc.store.Save(book); err != nil {
		respondDomainError(c, err, "create book")
		return
	}

	created, err := bc.store.GetByID(book.ID)
	if err != nil {
		respondInternalError(c, err, "reload created book")
		return
	}
	respondCreated(c, created)
}

// UpdateBook overwrites a book's fields.
// PUT /api/books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "update book")
		return
	}

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	book.Title = req.Title
	book.ISBN = req.ISBN
	book.PublicationYear = req.PublicationYear
	book.AuthorID = req.AuthorID
	book.PublisherID = req.PublisherID
	book.GenreID = req.GenreID
	book.Author = entities.Author{}
	book.Publisher = entities.Publisher{}
	book.Genre = entities.Genre{}

	if err := bc.store.Save(book); err != nil {
		respondDomainError(c, err, "update book")
		return
	}

	updated, err := bc.store.GetByID(id)
	if err != nil {
		respondInternalError(c, err, "reload updated book")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBook removes a book from the catalog.
// DELETE /api/books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := bc.store.GetByID(id); err != nil {
		respondDomainError(c, err, "delete book")
		return
	}

	if err := bc.store.DeleteByID(id); err != nil {
		respondInternalError(c, err, "delete book")
		return
	}
	respondSuccess(c, "book deleted")
}
