package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	original := NewForbidden("nope")
	mapped := ToDomainError(original)
	assert.Equal(t, http.StatusForbidden, mapped.HTTPStatus)
	assert.Equal(t, "FORBIDDEN", mapped.Code)
}

func TestToDomainErrorWrapped(t *testing.T) {
	wrapped := fmt.Errorf("loading user: %w", NewNotFound("user", nil))
	mapped := ToDomainError(wrapped)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
}

func TestToDomainErrorUniqueViolation(t *testing.T) {
	mapped := ToDomainError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.Equal(t, "CONFLICT", mapped.Code)
}

func TestToDomainErrorOpaqueFallback(t *testing.T) {
	mapped := ToDomainError(errors.New("connection refused to 10.0.0.5"))
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	assert.Equal(t, "internal server error", mapped.Message)
	// the cause stays available for logs but not the client message
	assert.Contains(t, mapped.Error(), "connection refused")
}

func TestToDomainErrorNil(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))
}
