package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// List - GET /catalog/authors
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	out := make([]*author.Response, 0, len(authors))
	for i := range authors {
		out = append(out, authors[i].ToResponse())
	}
	response.Success(c, http.StatusOK, out)
}

// GetDetail - GET /catalog/author/:id
// Also serves the delete confirmation view, which shows the same aggregate.
func (h *AuthorHandler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.NotFound(c, "author not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"author": detail.Author.ToResponse(),
		"books":  detail.Books,
	})
}

// Create - POST /catalog/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	var form author.Form
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

// Update - PUT /catalog/author/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	var form author.Form
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
		case errors.Is(err, author.ErrAuthorNotFound):
			response.NotFound(c, "author not found")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	c.Header("Location", updated.URL())
	response.Success(c, http.StatusOK, updated.ToResponse())
}

// Delete - DELETE /catalog/author/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid author id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		var blocked *author.DeleteBlockedError
		switch {
		case errors.As(err, &blocked):
			response.DeleteBlocked(c, blocked.Error(), blocked.Books)
		case errors.Is(err, author.ErrAuthorNotFound):
			response.NotFound(c, "author not found")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect": "/catalog/authors"})
}
