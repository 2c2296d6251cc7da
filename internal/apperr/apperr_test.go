package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindDuplicate, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindStorage, http.StatusInternalServerError},
		{KindRateLimited, http.StatusTooManyRequests},
		{KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.kind.Status(), tc.kind.String())
	}
}

func TestKindOfUnwrapsWrappedErrors(t *testing.T) {
	base := NotFound("Employee not found")
	wrapped := fmt.Errorf("record entry: %w", base)

	require.Equal(t, KindNotFound, KindOf(wrapped))
	require.True(t, Is(wrapped, KindNotFound))
	require.False(t, Is(wrapped, KindStorage))
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestStorageKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("Quality entry could not be saved", cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection refused")
}
