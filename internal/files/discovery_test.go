package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("CompanyName,Revenue\nAcme,1\n"), 0644))
	}
}

func TestNewDiscovery(t *testing.T) {
	basePath := "/test/base"
	discovery := NewDiscovery(basePath)

	assert.NotNil(t, discovery)
	assert.Equal(t, basePath, discovery.basePath)
}

func TestFindReports(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected []string
	}{
		{
			name:     "csv and xlsx sorted by name",
			files:    []string{"revenue_2024-02.xlsx", "revenue_2024-01.csv", "notes.txt"},
			expected: []string{"revenue_2024-01.csv", "revenue_2024-02.xlsx"},
		},
		{
			name:     "extensions are case insensitive",
			files:    []string{"A_2024-01.CSV", "B_2024-02.XLSX"},
			expected: []string{"A_2024-01.CSV", "B_2024-02.XLSX"},
		},
		{
			name:     "hidden files ignored",
			files:    []string{".~lock.revenue_2024-01.csv", "revenue_2024-01.csv"},
			expected: []string{"revenue_2024-01.csv"},
		},
		{
			name:     "empty directory",
			files:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeFiles(t, filepath.Join(tmpDir, "reports"), tt.files...)
			require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "reports", "nested.csv"), 0755))

			found, err := NewDiscovery(tmpDir).FindReports("reports")
			require.NoError(t, err)

			var names []string
			for _, f := range found {
				names = append(names, f.Name)
				assert.Equal(t, filepath.Join(tmpDir, "reports", f.Name), f.Path)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestFindReports_AbsoluteAndMissing(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, "revenue_2024-01.csv")

	found, err := NewDiscovery("/elsewhere").FindReports(tmpDir)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = NewDiscovery(tmpDir).FindReports("missing")
	assert.Error(t, err)
}
