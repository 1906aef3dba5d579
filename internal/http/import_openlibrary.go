package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarian/internal/metadata"
)

type ImportController struct {
	importer *metadata.Importer
}

func NewImportController(importer *metadata.Importer) *ImportController {
	return &ImportController{importer: importer}
}

type importRequest struct {
	ISBN string `json:"isbn" binding:"required"`
}

// ImportByISBN fetches book metadata from OpenLibrary and adds the book to
// the catalog. Returns 200 with the existing book when the ISBN is already
// catalogued, 201 when a book was created.
// POST /api/books/import/openlibrary
func (ic *ImportController) ImportByISBN(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := ic.importer.ImportByISBN(c.Request.Context(), req.ISBN)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if result.Created {
		respondCreated(c, result)
		return
	}
	c.JSON(http.StatusOK, result)
}
