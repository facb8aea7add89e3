package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibocomdigital/bibomarket-frontend/internal/backend"
	"github.com/bibocomdigital/bibomarket-frontend/internal/service"
	"github.com/bibocomdigital/bibomarket-frontend/pkg/response"
)

// Handler bundles the services the API routes need.
type Handler struct {
	followSvc service.FollowService
}

func New(followSvc service.FollowService) *Handler {
	return &Handler{followSvc: followSvc}
}

// writeServiceError maps service failures onto HTTP replies. Backend
// messages pass through verbatim; there is no translation table.
func writeServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUnauthenticated) {
		response.Unauthorized(c, err.Error())
		return
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		response.Error(c, apiErr.StatusCode, apiErr.Message)
		return
	}
	response.Error(c, http.StatusBadGateway, "marketplace backend unavailable")
}
