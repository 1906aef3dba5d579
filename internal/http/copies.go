package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/circulation"
	"github.com/mrlokans/librarian/internal/entities"
)

// CopyStore defines database operations for copy management.
type CopyStore interface {
	Save(copy *entities.Copy) error
	GetByID(id uint) (*entities.Copy, error)
	GetAll() ([]entities.Copy, error)
	GetByBookID(bookID uint) ([]entities.Copy, error)
	DeleteByID(id uint) error
}

type CopiesController struct {
	store   CopyStore
	service *circulation.Service
}

func NewCopiesController(store CopyStore, service *circulation.Service) *CopiesController {
	return &CopiesController{store: store, service: service}
}

type copyRequest struct {
	BookID    uint               `json:"book_id" binding:"required"`
	Barcode   string             `json:"barcode"`
	MediaType entities.MediaType `json:"media_type"`
}

type copyStatusRequest struct {
	Status entities.CopyStatus `json:"status" binding:"required"`
}

// ListCopies returns all copies, or a book's copies when ?book_id= is given.
// GET /api/copies
func (cc *CopiesController) ListCopies(c *gin.Context) {
	var (
		copies []entities.Copy
		err    error
	)
	if bookID := parseQueryID(c, "book_id"); bookID > 0 {
		copies, err = cc.store.GetByBookID(bookID)
	} else {
		copies, err = cc.store.GetAll()
	}
	if err != nil {
		respondInternalError(c, err, "list copies")
		return
	}
	c.JSON(http.StatusOK, gin.H{"copies": copies, "count": len(copies)})
}

// GetCopy returns a single copy.
// GET /api/copies/:id
func (cc *CopiesController) GetCopy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	copy, err := cc.store.GetByID(id)
	if err != nil {
		respondDomainError(c, err, "get copy")
		return
	}
	c.JSON(http.StatusOK, copy)
}

// CreateCopy registers a new physical copy of a book. The barcode is
// generated when omitted; media type defaults to BOOK.
// POST /api/copies
func (cc *CopiesController) CreateCopy(c *gin.Context) {
	var req copyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	if req.MediaType != "" && !entities.IsValidMediaType(req.MediaType) {
		respondBadRequest(c, "unknown media type: "+string(req.MediaType))
		return
	}

	copy := &entities.Copy{
		BookID:    req.BookID,
		Barcode:   req.Barcode,
		MediaType: req.MediaType,
		Status:    entities.CopyStatusAvailable,
	}
	if err := cc.store.Save(copy); err != nil {
		respondDomainError(c, err, "create copy")
		return
	}
	respondCreated(c, copy)
}

// UpdateCopyStatus overwrites a copy's status (librarian action).
// PATCH /api/copies/:id/status
func (cc *CopiesController) UpdateCopyStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req copyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	copy, err := cc.service.UpdateCopyStatus(id, req.Status)
	if err != nil {
		respondDomainError(c, err, "update copy status")
		return
	}
	c.JSON(http.StatusOK, copy)
}

// DeleteCopy removes a copy unless it has an active loan.
// DELETE /api/copies/:id
func (cc *CopiesController) DeleteCopy(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, err := cc.store.GetByID(id); err != nil {
		respondDomainError(c, err, "delete copy")
		return
	}
	if err := cc.store.DeleteByID(id); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	respondSuccess(c, "copy deleted")
}
