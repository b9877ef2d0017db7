package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mdelrosario/textbook-catalog-backend/internal/domain"
	"github.com/mdelrosario/textbook-catalog-backend/internal/service/catalog"
)

type catalogService interface {
	ListBooks(ctx context.Context, filter domain.BookFilter) (*catalog.ListResult, error)
	GetBook(ctx context.Context, code string) (*domain.Book, error)
	CreateBook(ctx context.Context, input catalog.CreateBookInput) (*domain.Book, error)
	UpdateBook(ctx context.Context, code string, input catalog.UpdateBookInput) (*domain.Book, error)
	DeleteBook(ctx context.Context, code string) error
	AddRemark(ctx context.Context, bookCode string, input catalog.RemarkInput) (*domain.Remark, error)
	UpdateRemark(ctx context.Context, bookCode, remarkID string, input catalog.RemarkInput) (*domain.Remark, error)
	DeleteRemark(ctx context.Context, bookCode, remarkID string) error
}

// Handler serves the catalog REST API.
type Handler struct {
	log     *slog.Logger
	catalog catalogService
}

// NewHandler creates the catalog HTTP handler.
func NewHandler(logger *slog.Logger, svc catalogService) *Handler {
	return &Handler{
		log:     logger.With("transport", "http"),
		catalog: svc,
	}
}

// listBooks handles GET /v1/books.
func (h *Handler) listBooks(c *gin.Context) {
	var query listBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.catalog.ListBooks(c.Request.Context(), query.toFilter())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toListResponse(res))
}

// getBook handles GET /v1/books/:code.
func (h *Handler) getBook(c *gin.Context) {
	book, err := h.catalog.GetBook(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book))
}

// createBook handles POST /v1/books.
func (h *Handler) createBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	created, err := h.catalog.CreateBook(c.Request.Context(), req.toInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(*created))
}

// updateBook handles PUT /v1/books/:code.
func (h *Handler) updateBook(c *gin.Context) {
	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	updated, err := h.catalog.UpdateBook(c.Request.Context(), c.Param("code"), req.toInput())
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*updated))
}

// deleteBook handles DELETE /v1/books/:code.
func (h *Handler) deleteBook(c *gin.Context) {
	if err := h.catalog.DeleteBook(c.Request.Context(), c.Param("code")); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
