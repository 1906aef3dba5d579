package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/circulation"
)

type LoansController struct {
	service *circulation.Service
}

func NewLoansController(service *circulation.Service) *LoansController {
	return &LoansController{service: service}
}

type loanRequest struct {
	CopyID  uint      `json:"copy_id" binding:"required"`
	UserID  uint      `json:"user_id" binding:"required"`
	DueDate time.Time `json:"due_date" binding:"required"`
}

// CreateLoan checks a copy out to a user.
// POST /api/loans
func (lc *LoansController) CreateLoan(c *gin.Context) {
	var req loanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	loan, err := lc.service.CreateLoan(req.CopyID, req.UserID, req.DueDate)
	if err != nil {
		respondDomainError(c, err, "create loan")
		return
	}
	respondCreated(c, loan)
}

// ListLoans returns loans, optionally filtered by ?user_id= or ?copy_id=.
// GET /api/loans
func (lc *LoansController) ListLoans(c *gin.Context) {
	userID := parseQueryID(c, "user_id")
	copyID := parseQueryID(c, "copy_id")

	loans, err := lc.service.ListLoans(userID, copyID)
	if err != nil {
		respondInternalError(c, err, "list loans")
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": loans, "count": len(loans)})
}

// GetLoan returns a single loan.
// GET /api/loans/:id
func (lc *LoansController) GetLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loan, err := lc.service.GetLoan(id)
	if err != nil {
		respondDomainError(c, err, "get loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// ReturnLoan closes an open loan and releases its copy.
// POST /api/loans/:id/return
func (lc *LoansController) ReturnLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	loan, err := lc.service.ReturnBook(id)
	if err != nil {
		respondDomainError(c, err, "return loan")
		return
	}
	c.JSON(http.StatusOK, loan)
}

// DeleteLoan removes a loan record (administrative).
// DELETE /api/loans/:id
func (lc *LoansController) DeleteLoan(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := lc.service.DeleteLoan(id); err != nil {
		respondDomainError(c, err, "delete loan")
		return
	}
	respondSuccess(c, "loan deleted")
}
