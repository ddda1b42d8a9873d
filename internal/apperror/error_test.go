package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		desc string
		err  error
		code Code
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("boom"), CodeInternal},
		{"app error", New(CodeConflict, "taken"), CodeConflict},
		{"wrapped app error", fmt.Errorf("load: %w", New(CodeValidation, "bad")), CodeValidation},
		{"not found", NotFound(7), CodeNotFound},
	}

	for i, tc := range tests {
		assert.Equal(t, tc.code, GetCode(tc.err), "TEST[%d], failed.\n%s", i, tc.desc)
	}
}

func TestNotFoundMessage(t *testing.T) {
	assert.Equal(t, "No Employee found with ID: 99", NotFound(99).Error())
}
