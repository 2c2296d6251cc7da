package quality

import (
	"testing"
	"time"

	"textile-backend/internal/models"

	"github.com/stretchr/testify/require"
)

func mustDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func sampleEntries(t *testing.T) []models.QualityEntry {
	return []models.QualityEntry{
		{ID: "1", EmployeeID: "E1", ProductID: "P1", SupervisorID: "S1", Date: mustDay(t, "2024-05-01"), Subtotal: 15, Status: models.EntryActive},
		{ID: "2", EmployeeID: "E2", ProductID: "P1", SupervisorID: "S1", Date: mustDay(t, "2024-05-03"), Subtotal: 25, Status: models.EntryActive},
		{ID: "3", EmployeeID: "E1", ProductID: "P2", SupervisorID: "S2", Date: mustDay(t, "2024-05-05"), Subtotal: 5, Status: models.EntryInactive},
		{ID: "4", EmployeeID: "E3", ProductID: "P2", SupervisorID: "S2", Date: mustDay(t, "2024-05-07").Add(17 * time.Hour), Subtotal: 1, Status: models.EntryActive},
	}
}

func ids(entries []models.QualityEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestFilterEntries_EmptyCriteriaIsIdentity(t *testing.T) {
	entries := sampleEntries(t)
	require.Equal(t, entries, FilterEntries(entries, Criteria{}))
}

func TestFilterEntries_DateRangeInclusive(t *testing.T) {
	entries := sampleEntries(t)
	from, to := mustDay(t, "2024-05-03"), mustDay(t, "2024-05-07")

	got := FilterEntries(entries, Criteria{From: &from, To: &to})
	require.Equal(t, []string{"2", "3", "4"}, ids(got))
}

func TestFilterEntries_EqualityCriteria(t *testing.T) {
	entries := sampleEntries(t)

	cases := []struct {
		name string
		c    Criteria
		want []string
	}{
		{"employee", Criteria{EmployeeID: "E1"}, []string{"1", "3"}},
		{"product", Criteria{ProductID: "P2"}, []string{"3", "4"}},
		{"supervisor", Criteria{SupervisorID: "S1"}, []string{"1", "2"}},
		{"status", Criteria{Status: models.EntryInactive}, []string{"3"}},
		{"combined", Criteria{EmployeeID: "E1", ProductID: "P1"}, []string{"1"}},
		{"no match", Criteria{EmployeeID: "E9"}, []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ids(FilterEntries(entries, tc.c)))
		})
	}
}

func TestFilterEntries_IdempotentAndNonMutating(t *testing.T) {
	entries := sampleEntries(t)
	before := sampleEntries(t)
	from := mustDay(t, "2024-05-02")
	c := Criteria{From: &from, ProductID: "P1"}

	once := FilterEntries(entries, c)
	twice := FilterEntries(once, c)

	require.Equal(t, once, twice)
	require.Equal(t, before, entries)
}

func TestParseDateRange(t *testing.T) {
	from, to, err := ParseDateRange("startDate", "2024-01-01", "endDate", "")
	require.NoError(t, err)
	require.NotNil(t, from)
	require.Nil(t, to)

	_, _, err = ParseDateRange("startDate", "01/02/2024", "endDate", "")
	require.Error(t, err)

	_, _, err = ParseDateRange("startDate", "2024-02-01", "endDate", "2024-01-01")
	require.Error(t, err)
}

func TestTransition(t *testing.T) {
	require.NoError(t, Transition(models.EntryActive, models.EntryInactive))
	require.NoError(t, Transition(models.EntryActive, models.EntryDeleted))
	require.NoError(t, Transition(models.EntryInactive, models.EntryDeleted))
	require.NoError(t, Transition(models.EntryInactive, models.EntryInactive))

	require.Error(t, Transition(models.EntryDeleted, models.EntryActive))
	require.Error(t, Transition(models.EntryInactive, models.EntryActive))
	require.Error(t, Transition(models.EntryActive, "archived"))
}

func TestParseCriteria(t *testing.T) {
	query := func(values map[string]string) QueryFunc {
		return func(key string, _ ...string) string { return values[key] }
	}

	c, err := ParseCriteria(query(map[string]string{"fromDate": "2024-01-01", "toDate": "2024-01-31", "employeeId": "E1"}))
	require.NoError(t, err)
	require.Equal(t, "2024-01-01", c.From.Format(DateLayout))
	require.Equal(t, "2024-01-31", c.To.Format(DateLayout))
	require.Equal(t, "E1", c.EmployeeID)

	c, err = ParseCriteria(query(map[string]string{"startDate": "2024-02-01"}))
	require.NoError(t, err)
	require.Nil(t, c.To)

	_, err = ParseCriteria(query(map[string]string{"status": "deleted"}))
	require.Error(t, err)
}
