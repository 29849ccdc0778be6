package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ngmaloney/train-terminal/internal/favourites"
	"github.com/ngmaloney/train-terminal/internal/journeys"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
)

// errorResponse is the body of every failed request
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func respondOK(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, errorResponse{Status: "error", Message: message})
}

// respondError maps domain errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var apiErr *transportapi.APIError

	switch {
	case errors.Is(err, journeys.ErrNotFound), errors.Is(err, favourites.ErrNotFound):
		respondMessage(c, http.StatusNotFound, err.Error())
	case errors.Is(err, journeys.ErrInvalidRule),
		errors.Is(err, journeys.ErrInvalidLocation),
		errors.Is(err, journeys.ErrInvalidTime),
		errors.Is(err, journeys.ErrInvalidWeekday):
		respondMessage(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &apiErr):
		status := http.StatusBadGateway
		switch {
		case apiErr.Status == http.StatusNotFound:
			status = http.StatusNotFound
		case apiErr.Status == http.StatusRequestTimeout:
			status = http.StatusGatewayTimeout
		}
		respondMessage(c, status, apiErr.Message)
	default:
		_ = c.Error(err)
		respondMessage(c, http.StatusInternalServerError, "internal error")
	}
}
