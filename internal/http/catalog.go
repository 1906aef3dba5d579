package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/entities"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	Save(author *entities.Author) error
	GetByID(id uint) (*entities.Author, error)
	GetAll() ([]entities.Author, error)
	DeleteByID(id uint) error
}

// PublisherStore defines database operations for publisher management.
type PublisherStore interface {
	Save(publisher *entities.Publisher) error
	GetByID(id uint) (*entities.Publisher, error)
	GetAll() ([]entities.Publisher, error)
	DeleteByID(id uint) error
}

// GenreStore defines database operations for genre management.
type GenreStore interface {
	Save(genre *entities.Genre) error
	GetByID(id uint) (*entities.Genre, error)
	GetAll() ([]entities.Genre, error)
	DeleteByID(id uint) error
}

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

// AuthorsController exposes CRUD over authors. Authors, publishers and
// genres are name-only records; their controllers mirror each other.
type AuthorsController struct {
	store AuthorStore
}

func NewAuthorsController(store AuthorStore) *AuthorsController {
	return &AuthorsController{store: store}
}

// GET /api/authors
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	authors, err := ac.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, gin.H{"authors": authors, "count": len(authors)})
}

// GET /api/authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	author, err := ac.store.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get author")
		return
	}
	c.JSON(http.StatusOK, author)
}

// POST /api/authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	author := &entities.Author{Name: req.Name}
	if err := ac.store.Save(author); err != nil {
		respondDomainError(c, err, "create author")
		return
	}
	respondCreated(c, author)
}

// DELETE /api/authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := ac.store.GetByID(id); err != nil {
		respondDomainError(c, err, "delete author")
		return
	}
	if err := ac.store.DeleteByID(id); err != nil {
		respondInternalError(c, err, "delete author")
		return
	}
	respondSuccess(c, "author deleted")
}

// PublishersController exposes CRUD over publishers.
type PublishersController struct {
	store PublisherStore
}

func NewPublishersController(store PublisherStore) *PublishersController {
	return &PublishersController{store: store}
}

// GET /api/publishers
func (pc *PublishersController) ListPublishers(c *gin.Context) {
	publishers, err := pc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list publishers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"publishers": publishers, "count": len(publishers)})
}

// GET /api/publishers/:id
func (pc *PublishersController) GetPublisher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	publisher, err := pc.store.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get publisher")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

// POST /api/publishers
func (pc *PublishersController) CreatePublisher(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	publisher := &entities.Publisher{Name: req.Name}
	if err := pc.store.Save(publisher); err != nil {
		respondDomainError(c, err, "create publisher")
		return
	}
	respondCreated(c, publisher)
}

// DELETE /api/publishers/:id
func (pc *PublishersController) DeletePublisher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := pc.store.GetByID(id); err != nil {
		respondDomainError(c, err, "delete publisher")
		return
	}
	if err := pc.store.DeleteByID(id); err != nil {
		respondInternalError(c, err, "delete publisher")
		return
	}
	respondSuccess(c, "publisher deleted")
}

// GenresController exposes CRUD over genres.
type GenresController struct {
	store GenreStore
}

func NewGenresController(store GenreStore) *GenresController {
	return &GenresController{store: store}
}

// GET /api/genres
func (gc *GenresController) ListGenres(c *gin.Context) {
	genres, err := gc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list genres")
		return
	}
	c.JSON(http.StatusOK, gin.H{"genres": genres, "count": len(genres)})
}

// GET /api/genres/:id
func (gc *GenresController) GetGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	genre, err := gc.store.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get genre")
		return
	}
	c.JSON(http.StatusOK, genre)
}

// POST /api/genres
func (gc *GenresController) CreateGenre(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	genre := &entities.Genre{Name: req.Name}
	if err := gc.store.Save(genre); err != nil {
		respondDomainError(c, err, "create genre")
		return
	}
	respondCreated(c, genre)
}

// DELETE /api/genres/:id
func (gc *GenresController) DeleteGenre(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := gc.store.GetByID(id); err != nil {
		respondDomainError(c, err, "delete genre")
		return
	}
	if err := gc.store.DeleteByID(id); err != nil {
		respondInternalError(c, err, "delete genre")
		return
	}
	respondSuccess(c, "genre deleted")
}
