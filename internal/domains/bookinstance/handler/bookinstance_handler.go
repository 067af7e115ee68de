package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/domains/bookinstance"
	"library-catalog/internal/shared/response"
)

type BookInstanceHandler struct {
	service bookinstance.Service
}

func NewBookInstanceHandler(svc bookinstance.Service) *BookInstanceHandler {
	return &BookInstanceHandler{service: svc}
}

// List - GET /catalog/bookinstances
func (h *BookInstanceHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}

	response.Success(c, http.StatusOK, items)
}

// GetDetail - GET /catalog/bookinstance/:id
// Also serves the delete confirmation view.
func (h *BookInstanceHandler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book instance id")
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, bookinstance.ErrInstanceNotFound) {
			response.NotFound(c, "book instance not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"instance": detail.Instance.ToResponse(),
		"book":     detail.Book,
	})
}

// GetFormData - GET /catalog/bookinstances/form-data and
// /catalog/bookinstance/:id/form-data
func (h *BookInstanceHandler) GetFormData(c *gin.Context) {
	var instanceID *uuid.UUID
	if raw := c.Param("id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid book instance id")
			return
		}
		instanceID = &id
	}

	data, err := h.service.GetFormData(c.Request.Context(), instanceID)
	if err != nil {
		if errors.Is(err, bookinstance.ErrInstanceNotFound) {
			response.NotFound(c, "book instance not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, data)
}

// Create - POST /catalog/bookinstances
func (h *BookInstanceHandler) Create(c *gin.Context) {
	var form bookinstance.Form
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

// Update - PUT /catalog/bookinstance/:id
func (h *BookInstanceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book instance id")
		return
	}

	var form bookinstance.Form
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
		case errors.Is(err, bookinstance.ErrInstanceNotFound):
			response.NotFound(c, "book instance not found")
		default:
			response.InternalServerError(c, err.Error())
		}
		return
	}

	c.Header("Location", updated.URL())
	response.Success(c, http.StatusOK, updated.ToResponse())
}

// Delete - DELETE /catalog/bookinstance/:id
// Copies are always deletable.
func (h *BookInstanceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid book instance id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, bookinstance.ErrInstanceNotFound) {
			response.NotFound(c, "book instance not found")
		} else {
			response.InternalServerError(c, err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect": "/catalog/bookinstances"})
}
