package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(NotFound("Wallpaper not found")))
	assert.Equal(t, KindConflict, KindOf(fmt.Errorf("wrapped: %w", Conflict("dup"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestDependencyUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Dependency("Failed to store image", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "dependency", err.Kind.String())
}
