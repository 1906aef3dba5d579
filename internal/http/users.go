package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/entities"
)

// UserStore defines database operations for member management.
type UserStore interface {
	Create(name, email, password string) (*entities.User, error)
	GetByID(id uint) (*entities.User, error)
	GetAll() ([]entities.User, error)
	DeleteByID(id uint) error
}

type UsersController struct {
	store UserStore
}

func NewUsersController(store UserStore) *UsersController {
	return &UsersController{store: store}
}

type userRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// ListUsers returns all registered members.
// GET /api/users
func (uc *UsersController) ListUsers(c *gin.Context) {
	users, err := uc.store.GetAll()
	if err != nil {
		respondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users, "count": len(users)})
}

// GetUser returns a single member.
// GET /api/users/:id
func (uc *UsersController) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	user, err := uc.store.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser registers a member. Duplicate emails yield 409.
// POST /api/users
func (uc *UsersController) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := uc.store.Create(req.Name, req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err, "create user")
		return
	}
	respondCreated(c, user)
}

// DeleteUser removes a member.
// DELETE /api/users/:id
func (uc *UsersController) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := uc.store.GetByID(id); err != nil {
		respondDomainError(c, err, "delete user")
		return
	}
	if err := uc.store.DeleteByID(id); err != nil {
		respondInternalError(c, err, "delete user")
		return
	}
	respondSuccess(c, "user deleted")
}
