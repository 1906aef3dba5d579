// Package books provides database operations for the book catalog.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetByID(id)
package books

import (
	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save creates the book when it has no ID yet, otherwise updates it.
func (r *Repository) Save(book *entities.Book) error {
	return r.db.Save(book).Error
}

// GetByID retrieves a book with its catalog associations resolved.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Publisher").Preload("Genre").
		First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// GetAll returns every book ordered by title.
func (r *Repository) GetAll() ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").Preload("Publisher").Preload("Genre").
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// GetByISBN retrieves a book by its ISBN.
func (r *Repository) GetByISBN(isbn string) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Author").Preload("Publisher").
		Where("isbn = ?", isbn).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Search returns books whose title matches the query (case-insensitive).
func (r *Repository) Search(query string) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Author").
		Where("title LIKE ?", "%"+query+"%").
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// DeleteByID removes a book.
func (r *Repository) DeleteByID(id uint) error {
	return r.db.Delete(&entities.Book{}, id).Error
}
