package testutil

import (
	"encoding/csv"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

// CSVRows reads a results file and returns its header and records.
func CSVRows(t *testing.T, path string) ([]string, [][]string) {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, records, "results file %s has no header", path)
	return records[0], records[1:]
}

// RunIDs returns the distinct run ids of the records, in order of appearance.
func RunIDs(t *testing.T, records [][]string) []int {
	t.Helper()

	var ids []int
	seen := map[int]bool{}
	for _, rec := range records {
		id, err := strconv.Atoi(rec[0])
		require.NoError(t, err)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

// Column returns the named column of every record as floats.
func Column(t *testing.T, header []string, records [][]string, name string) []float64 {
	t.Helper()

	idx := -1
	for i, h := range header {
		if h == name {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0, "column %q not in header %v", name, header)

	values := make([]float64, 0, len(records))
	for _, rec := range records {
		v, err := strconv.ParseFloat(rec[idx], 64)
		require.NoError(t, err)
		values = append(values, v)
	}
	return values
}
