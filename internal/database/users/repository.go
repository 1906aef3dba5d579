// Package users provides database operations for library members.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.Create("Ada", "ada@example.com", "secret")
package users

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mrlokans/librarian/internal/entities"
)

const bcryptCost = 12

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create creates a new user with a bcrypt-hashed password. The email is
// unique; a duplicate surfaces as gorm.ErrDuplicatedKey.
func (r *Repository) Create(name, email, password string) (*entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a member's credentials.
func (r *Repository) Authenticate(email, password string) (*entities.User, error) {
	user, err := r.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll returns every registered user.
func (r *Repository) GetAll() ([]entities.User, error) {
	var users []entities.User
	err := r.db.Order("name ASC").Find(&users).Error
	return users, err
}

// DeleteByID removes a user.
func (r *Repository) DeleteByID(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}
