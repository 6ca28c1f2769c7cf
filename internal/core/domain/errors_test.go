package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrNetworkFailure", ErrNetworkFailure},
		{"ErrDecodeFailure", ErrDecodeFailure},
		{"ErrContentTooSmall", ErrContentTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Messages(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.Equal(t, "network failure", ErrNetworkFailure.Error())
	assert.Equal(t, "decode failure", ErrDecodeFailure.Error())
	assert.Equal(t, "content too small", ErrContentTooSmall.Error())
}

// TestErrors_Wrapped tests that wrapped errors still match their sentinel
func TestErrors_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("%w: status 404", ErrNetworkFailure)

	assert.True(t, errors.Is(wrapped, ErrNetworkFailure))
	assert.False(t, errors.Is(wrapped, ErrDecodeFailure))
	assert.Contains(t, wrapped.Error(), "status 404")
}

func TestErrors_Distinct(t *testing.T) {
	all := []error{
		ErrNotFound, ErrInvalidInput, ErrUnsupportedType,
		ErrNetworkFailure, ErrDecodeFailure, ErrContentTooSmall,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
			}
		}
	}
}
