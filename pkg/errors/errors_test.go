package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: NewValidationError("name", "is required"), want: http.StatusBadRequest},
		{name: "not found", err: NewNotFoundError("user", "7"), want: http.StatusNotFound},
		{name: "internal", err: NewInternalError("boom", nil), want: http.StatusInternalServerError},
		{name: "wrapped not found", err: fmt.Errorf("failed to get user: %w", NewNotFoundError("user", "1")), want: http.StatusNotFound},
		{name: "plain error", err: stderrors.New("unexpected"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "validation failed: name - is required", NewValidationError("name", "is required").Error())
	assert.Equal(t, "validation failed: bad body", NewValidationError("", "bad body").Error())
	assert.Equal(t, "item not found: id=3", NewNotFoundError("item", "3").Error())
	assert.Equal(t, "item not found", NewNotFoundError("item", "").Error())

	cause := stderrors.New("strconv failure")
	ie := NewInternalError("failed to convert price", cause)
	assert.Equal(t, "failed to convert price: strconv failure", ie.Error())
	assert.ErrorIs(t, ie, cause)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("user", "1")))
	assert.True(t, IsNotFound(fmt.Errorf("wrap: %w", NewNotFoundError("user", "1"))))
	assert.False(t, IsNotFound(NewValidationError("name", "missing")))
	assert.False(t, IsNotFound(nil))
}
