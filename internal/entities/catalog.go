package entities

import (
	"time"

	"gorm.io/gorm"
)

type Author struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:256" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Publisher struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"uniqueIndex;size:256" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type Genre struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Title           string         `gorm:"index;size:512" json:"title"`
	ISBN            string         `gorm:"index;size:20" json:"isbn,omitempty"`
	PublicationYear int            `json:"publication_year,omitempty"`
	AuthorID        uint           `gorm:"index" json:"author_id"`
	PublisherID     uint           `gorm:"index" json:"publisher_id,omitempty"`
	GenreID         uint           `gorm:"index" json:"genre_id,omitempty"`
	Author          Author         `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Publisher       Publisher      `gorm:"foreignKey:PublisherID" json:"publisher,omitempty"`
	Genre           Genre          `gorm:"foreignKey:GenreID" json:"genre,omitempty"`
	Copies          []Copy         `gorm:"foreignKey:BookID" json:"copies,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
