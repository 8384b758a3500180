package github

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
)

func TestIsAlreadyExistsError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name: "422 with already_exists code",
			err: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusUnprocessableEntity},
				Errors:   []github.Error{{Code: "already_exists"}},
			},
			expected: true,
		},
		{
			name: "422 with other code",
			err: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusUnprocessableEntity},
				Errors:   []github.Error{{Code: "invalid"}},
			},
			expected: false,
		},
		{
			name: "404 is not already-exists",
			err: &github.ErrorResponse{
				Response: &http.Response{StatusCode: http.StatusNotFound},
				Errors:   []github.Error{{Code: "already_exists"}},
			},
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isAlreadyExistsError(tt.err))
		})
	}
}
