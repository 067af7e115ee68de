package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/genre"
	"library-catalog/internal/shared/response"
)

type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(svc genre.Service) *GenreHandler {
	return &GenreHandler{service: svc}
}

// List - GET /catalog/genres
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	out := make([]*genre.Response, 0, len(genres))
	for i := range genres {
		out = append(out, genres[i].ToResponse())
	}
	response.Success(c, http.StatusOK, out)
}

// GetDetail - GET /catalog/genre/:id
func (h *GenreHandler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, genre.ErrGenreNotFound) {
			response.NotFound(c, "genre not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"genre": detail.Genre.ToResponse(),
		"books": detail.Books,
	})
}

// Create - POST /catalog/genres
// A duplicate name resolves to the canonical record: 200 with its URL
// instead of 201 with a new one.
func (h *GenreHandler) Create(c *gin.Context) {
	var form genre.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	g, resolved, err := h.service.Create(c.Request.Context(), &form)
	if err != nil {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ValidationFailed(c, vErrs)
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	c.Header("Location", g.URL())
	status := http.StatusCreated
	if resolved {
		status = http.StatusOK
	}
	response.Success(c, status, g.ToResponse())
}

// Update - PUT /catalog/genre/:id
func (h *GenreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	var form genre.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	g, _, err := h.service.Update(c.Request.Context(), id, &form)
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			response.ValidationFailed(c, vErrs)
		case errors.Is(err, genre.ErrGenreNotFound):
			response.NotFound(c, "genre not found")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	c.Header("Location", g.URL())
	response.Success(c, http.StatusOK, g.ToResponse())
}

// Delete - DELETE /catalog/genre/:id
func (h *GenreHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid genre id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		var blocked *genre.DeleteBlockedError
		switch {
		case errors.As(err, &blocked):
			response.DeleteBlocked(c, blocked.Error(), blocked.Books)
		case errors.Is(err, genre.ErrGenreNotFound):
			response.NotFound(c, "genre not found")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect": "/catalog/genres"})
}
