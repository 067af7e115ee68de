package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared/response"
)

type BookHandler struct {
	service book.Service
}

func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{service: svc}
}

// Home - GET /catalog
// The catalog landing data: record counts across every collection.
func (h *BookHandler) Home(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"title": "Local Library Home",
		"stats": stats,
	})
}

// List - GET /catalog/books
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, books)
}

// GetDetail - GET /catalog/book/:id
// Also serves the delete confirmation view, which shows the same aggregate.
func (h *BookHandler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			response.NotFound(c, "book not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"book":   detail.Book.ToResponse(),
		"author": detail.Author,
		"genres": detail.Genres,
		"copies": detail.Copies,
	})
}

// GetFormData - GET /catalog/books/form-data and /catalog/book/:id/form-data
// Returns the author and genre choice lists; with an id the book itself is
// included and its genres come back flagged.
func (h *BookHandler) GetFormData(c *gin.Context) {
	var bookID *uuid.UUID
	if raw := c.Param("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid book id")
			return
		}
		bookID = &id
	}

	data, err := h.service.GetFormData(c.Request.Context(), bookID)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			response.NotFound(c, "book not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, data)
}

// Create - POST /catalog/books
func (h *BookHandler) Create(c *gin.Context) {
	var form book.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &form)
	if err != nil {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ValidationFailed(c, vErrs)
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	c.Header("Location", created.URL())
	response.Success(c, http.StatusCreated, created.ToResponse())
}

// Update - PUT /catalog/book/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	var form book.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &form)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, book.ErrBookNotFound):
			response.NotFound(c, "book not found")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	c.Header("Location", updated.URL())
	response.Success(c, http.StatusOK, updated.ToResponse())
}

// Delete - DELETE /catalog/book/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		var blocked *book.DeleteBlockedError
		switch {
		case errors.As(err, &blocked):
			response.DeleteBlocked(c, blocked.Error(), blocked.Copies)
		case errors.Is(err, book.ErrBookNotFound):
			response.NotFound(c, "book not found")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect": "/catalog/books"})
}
