package admin

import (
	"testing"

	"textile-backend/internal/apperr"
	"textile-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestNormalizeQualities(t *testing.T) {
	n, names, err := NormalizeQualities(nil, nil, 0)
	require.NoError(t, err)
	require.Equal(t, models.DefaultQualityGrades, n)
	require.Equal(t, []string{"Quality 1", "Quality 2", "Quality 3", "Quality 4"}, names)

	n, names, err = NormalizeQualities(intPtr(2), nil, 4)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{"Quality 1", "Quality 2"}, names)

	n, names, err = NormalizeQualities(nil, []string{" A ", "B", "C"}, 4)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []string{"A", "B", "C"}, names)
}

func TestNormalizeQualitiesRejects(t *testing.T) {
	cases := map[string]struct {
		count *int
		names []string
	}{
		"zero":           {intPtr(0), nil},
		"too many":       {intPtr(models.MaxQualityGrades + 1), nil},
		"length differs": {intPtr(3), []string{"A", "B"}},
		"blank name":     {nil, []string{"A", " "}},
		"duplicate":      {nil, []string{"A", "A"}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := NormalizeQualities(tc.count, tc.names, 4)
			require.True(t, apperr.Is(err, apperr.KindValidation), "got %v", err)
		})
	}
}
