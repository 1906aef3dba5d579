package metadata

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

// MetadataProvider defines the interface for fetching book metadata.
type MetadataProvider interface {
	SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error)
}

// BookSaver defines the catalog writes the importer needs.
type BookSaver interface {
	Save(book *entities.Book) error
	GetByISBN(isbn string) (*entities.Book, error)
}

// AuthorResolver resolves authors by name.
type AuthorResolver interface {
	GetByName(name string) (*entities.Author, error)
	Save(author *entities.Author) error
}

// PublisherResolver resolves publishers by name.
type PublisherResolver interface {
	GetByName(name string) (*entities.Publisher, error)
	Save(publisher *entities.Publisher) error
}

// ImportResult describes what an import did.
type ImportResult struct {
	Book    *entities.Book `json:"book"`
	Created bool           `json:"created"`
	Source  string         `json:"source"`
}

// Importer pulls book metadata from OpenLibrary into the local catalog,
// creating authors and publishers by name as needed.
type Importer struct {
	provider   MetadataProvider
	books      BookSaver
	authors    AuthorResolver
	publishers PublisherResolver
}

// NewImporter creates a new catalog importer.
func NewImporter(provider MetadataProvider, books BookSaver, authors AuthorResolver, publishers PublisherResolver) *Importer {
	return &Importer{
		provider:   provider,
		books:      books,
		authors:    authors,
		publishers: publishers,
	}
}

// ImportByISBN fetches metadata for an ISBN and saves the book. When a book
// with that ISBN is already in the catalog it is returned unchanged.
func (i *Importer) ImportByISBN(ctx context.Context, isbn string) (*ImportResult, error) {
	normalized := normalizeISBN(isbn)
	if normalized == "" {
		return nil, fmt.Errorf("invalid ISBN: %q", isbn)
	}

	if existing, err := i.books.GetByISBN(normalized); err == nil {
		return &ImportResult{Book: existing, Created: false, Source: "catalog"}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check catalog: %w", err)
	}

	meta, err := i.provider.SearchByISBN(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("openlibrary lookup failed: %w", err)
	}
	if meta.Title == "" {
		return nil, fmt.Errorf("openlibrary returned no title for ISBN %s", normalized)
	}

	book := &entities.Book{
		Title:           meta.Title,
		ISBN:            normalized,
		PublicationYear: meta.PublicationYear,
	}

	if meta.Author != "" {
		author, err := i.resolveAuthor(meta.Author)
		if err != nil {
			return nil, err
		}
		book.AuthorID = author.ID
	}

	if meta.Publisher != "" {
		publisher, err := i.resolvePublisher(meta.Publisher)
		if err != nil {
			return nil, err
		}
		book.PublisherID = publisher.ID
	}

	if err := i.books.Save(book); err != nil {
		return nil, fmt.Errorf("failed to save imported book: %w", err)
	}

	return &ImportResult{Book: book, Created: true, Source: "openlibrary"}, nil
}

func (i *Importer) resolveAuthor(name string) (*entities.Author, error) {
	author, err := i.authors.GetByName(name)
	if err == nil {
		return author, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up author %q: %w", name, err)
	}

	author = &entities.Author{Name: name}
	if err := i.authors.Save(author); err != nil {
		return nil, fmt.Errorf("failed to create author %q: %w", name, err)
	}
	return author, nil
}

func (i *Importer) resolvePublisher(name string) (*entities.Publisher, error) {
	publisher, err := i.publishers.GetByName(name)
	if err == nil {
		return publisher, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up publisher %q: %w", name, err)
	}

	publisher = &entities.Publisher{Name: name}
	if err := i.publishers.Save(publisher); err != nil {
		return nil, fmt.Errorf("failed to create publisher %q: %w", name, err)
	}
	return publisher, nil
}
