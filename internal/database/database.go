package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/librarian/internal/entities"
)

var defaultGenres = []entities.Genre{
	{Name: "Fiction"},
	{Name: "Non-fiction"},
	{Name: "Science Fiction"},
	{Name: "Fantasy"},
	{Name: "Mystery"},
	{Name: "Biography"},
	{Name: "History"},
	{Name: "Poetry"},
	{Name: "Children"},
	{Name: "Reference"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Surface sqlite unique violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

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
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	if err := database.seedGenres(); err != nil {
		return nil, fmt.Errorf("failed to seed genres: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedGenres() error {
	for _, genre := range defaultGenres {
		var existing entities.Genre
		result := d.DB.Where("name = ?", genre.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&genre).Error; err != nil {
				return fmt.Errorf("failed to create genre %s: %w", genre.Name, err)
			}
		}
	}
	return nil
}
