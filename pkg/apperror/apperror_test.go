package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, CodeOf(Conflict("slot overlaps %s", "07:00-08:00")))
	assert.Equal(t, http.StatusNotFound, CodeOf(fmt.Errorf("wrapped: %w", NotFound("court not found"))))
	assert.Equal(t, http.StatusInternalServerError, CodeOf(errors.New("boom")))
}

func TestInternalKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause, "failed to save booking")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save booking", err.Message)
	assert.True(t, Is(err, http.StatusInternalServerError))
}
