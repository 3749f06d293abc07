package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Conflict("dup"), http.StatusConflict},
		{Auth("nope"), http.StatusUnauthorized},
		{Forbidden("role"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", NotFound("gone")), http.StatusNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestErrorIs_MatchesSentinelByKindAndMessage(t *testing.T) {
	sentinel := Auth("invalid username or password")
	wrapped := fmt.Errorf("login: %w", Auth("invalid username or password"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, Auth("something else"))
	assert.NotErrorIs(t, wrapped, Validation("invalid username or password"))
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := Internal("Failed to load project", errors.New("connection reset"))

	assert.Equal(t, "Failed to load project", PublicMessage(err))
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, "Internal server error", PublicMessage(errors.New("raw")))
}
