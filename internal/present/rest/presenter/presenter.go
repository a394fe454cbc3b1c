package presenter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	"github.com/totegamma/rerum-inbox"
)

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

// Created answers 201 with the new resource and its location.
func Created(c echo.Context, location string, payload any) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, payload)
}

// Immutable serves a payload that never changes with a strong ETag and
// answers 304 when the client already holds it.
func Immutable(c echo.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return InternalError(c, err)
	}

	etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSONBlob(http.StatusOK, body)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, inbox.ErrorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, inbox.ErrorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, inbox.ErrorResponse{Error: msg})
}

func MethodNotAllowed(c echo.Context, msg string) error {
	return c.JSON(http.StatusMethodNotAllowed, inbox.ErrorResponse{Error: msg})
}

func InternalError(c echo.Context, err error) error {
	slog.ErrorContext(
		c.Request().Context(), "internal error",
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
		slog.String("error", err.Error()),
		slog.String("module", "rest"),
	)
	return c.JSON(http.StatusInternalServerError, inbox.ErrorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}
