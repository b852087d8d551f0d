package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := InvalidArgumentf("bad entry at position %d", 3)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrNullInput)
	assert.Equal(t, "bad entry at position 3", err.Error())
}

func TestError_WrappedThroughFmt(t *testing.T) {
	err := fmt.Errorf("load seed: %w", NullInput("titles must not be nil"))

	assert.ErrorIs(t, err, ErrNullInput)
	assert.Equal(t, CodeNullInput, CodeOf(err))
}

func TestError_WrapKeepsCause(t *testing.T) {
	err := Wrap(io.ErrUnexpectedEOF, CodeInvalidArgument, "decode seed file")

	assert.Equal(t, "decode seed file: unexpected EOF", err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInvalidArgumentWithDetails(t *testing.T) {
	err := InvalidArgumentWithDetails("validation failed", map[string]string{"title": "is required"})

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, map[string]string{"title": "is required"}, err.Details)
}

func TestCodeOf_NonDomainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(io.EOF))
}

func TestCode_ExitCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNullInput, 2},
		{CodeInvalidArgument, 2},
		{CodeNotFound, 3},
		{CodeInternal, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.ExitCode())
		})
	}
}
