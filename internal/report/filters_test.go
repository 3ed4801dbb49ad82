package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFiltersScalarAndListDecodeTheSame(t *testing.T) {
	cases := []struct {
		name   string
		scalar string
		list   string
	}{
		{"branch", `{"codfilial": 3}`, `{"codfilial": [3]}`},
		{"client", `{"codcliente": "000123"}`, `{"codcliente": ["000123"]}`},
		{"city", `{"codcid": 42}`, `{"codcid": [42]}`},
		{"product", `{"codpro": 9}`, `{"codpro": [9]}`},
		{"region", `{"regiao": "SUL"}`, `{"regiao": ["SUL"]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var fromScalar, fromList FiltersBI
			require.NoError(t, json.Unmarshal([]byte(tc.scalar), &fromScalar))
			require.NoError(t, json.Unmarshal([]byte(tc.list), &fromList))
			require.Equal(t, fromList, fromScalar)
		})
	}
}

func TestFiltersListOrderPreserved(t *testing.T) {
	var f FiltersBI
	require.NoError(t, json.Unmarshal([]byte(`{"codfilial": [5, 1, 3], "regiao": ["SUL", "NORTE"]}`), &f))
	require.Equal(t, IntList{5, 1, 3}, f.BranchIDs)
	require.Equal(t, StringList{"SUL", "NORTE"}, f.Regions)
}

func TestFiltersNullMeansAbsent(t *testing.T) {
	var f FiltersBI
	require.NoError(t, json.Unmarshal([]byte(`{"codfilial": null, "codcliente": null}`), &f))
	require.Nil(t, f.BranchIDs)
	require.Nil(t, f.ClientIDs)
}

func TestWindowDefaults(t *testing.T) {
	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

	var f FiltersBI
	start, end := f.Window(now)
	require.Equal(t, now, end)
	require.Equal(t, now.AddDate(0, 0, -30), start)
}

func TestWindowExplicitDates(t *testing.T) {
	var f FiltersBI
	require.NoError(t, json.Unmarshal([]byte(`{"data_inicio": "2024-01-01", "data_fim": "2024-01-31"}`), &f))

	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	start, end := f.Window(now)
	require.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), end)
}

func TestPriorYearWindowShiftsBoth365Days(t *testing.T) {
	var f FiltersBI
	require.NoError(t, json.Unmarshal([]byte(`{"data_inicio": "2024-01-01", "data_fim": "2024-01-31"}`), &f))

	now := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	start, end := f.Window(now)
	priorStart, priorEnd := f.PriorYearWindow(now)
	require.Equal(t, start.AddDate(0, 0, -365), priorStart)
	require.Equal(t, end.AddDate(0, 0, -365), priorEnd)
}

func TestDateRejectsGarbage(t *testing.T) {
	var f FiltersBI
	err := json.Unmarshal([]byte(`{"data_inicio": "31/01/2024"}`), &f)
	require.Error(t, err)
}
