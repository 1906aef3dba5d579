// Package catalog provides database operations for the supporting catalog
// entities: authors, publishers and genres. They are plain records with a
// unique name constraint; unique violations surface as gorm.ErrDuplicatedKey.
package catalog

import (
	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

// AuthorsRepository handles author database operations.
type AuthorsRepository struct {
	db *gorm.DB
}

func NewAuthorsRepository(db *gorm.DB) *AuthorsRepository {
	return &AuthorsRepository{db: db}
}

func (r *AuthorsRepository) Save(author *entities.Author) error {
	return r.db.Save(author).Error
}

func (r *AuthorsRepository) GetByID(id uint) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.First(&author, id).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *AuthorsRepository) GetByName(name string) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.Where("name = ?", name).First(&author).Error; err != nil {
		return nil, err
	}
	return &author, nil
}

func (r *AuthorsRepository) GetAll() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("name ASC").Find(&authors).Error
	return authors, err
}

func (r *AuthorsRepository) DeleteByID(id uint) error {
	return r.db.Delete(&entities.Author{}, id).Error
}

// PublishersRepository handles publisher database operations.
type PublishersRepository struct {
	db *gorm.DB
}

func NewPublishersRepository(db *gorm.DB) *PublishersRepository {
	return &PublishersRepository{db: db}
}

func (r *PublishersRepository) Save(publisher *entities.Publisher) error {
	return r.db.Save(publisher).Error
}

func (r *PublishersRepository) GetByID(id uint) (*entities.Publisher, error) {
	var publisher entities.Publisher
	if err := r.db.First(&publisher, id).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (r *PublishersRepository) GetByName(name string) (*entities.Publisher, error) {
	var publisher entities.Publisher
	if err := r.db.Where("name = ?", name).First(&publisher).Error; err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (r *PublishersRepository) GetAll() ([]entities.Publisher, error) {
	var publishers []entities.Publisher
	err := r.db.Order("name ASC").Find(&publishers).Error
	return publishers, err
}

func (r *PublishersRepository) DeleteByID(id uint) error {
	return r.db.Delete(&entities.Publisher{}, id).Error
}

// GenresRepository handles genre database operations.
type GenresRepository struct {
	db *gorm.DB
}

func NewGenresRepository(db *gorm.DB) *GenresRepository {
	return &GenresRepository{db: db}
}

func (r *GenresRepository) Save(genre *entities.Genre) error {
	return r.db.Save(genre).Error
}

func (r *GenresRepository) GetByID(id uint) (*entities.Genre, error) {
	var genre entities.Genre
	if err := r.db.First(&genre, id).Error; err != nil {
		return nil, err
	}
	return &genre, nil
}

func (r *GenresRepository) GetAll() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := r.db.Order("name ASC").Find(&genres).Error
	return genres, err
}

func (r *GenresRepository) DeleteByID(id uint) error {
	return r.db.Delete(&entities.Genre{}, id).Error
}
