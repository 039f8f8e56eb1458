package files

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func stringInput(name, content string) Input {
	return Input{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(content)), nil },
	}
}

func TestLoader_Load(t *testing.T) {
	inputs := []Input{
		stringInput("revenue_2024-03.csv", "CompanyName,Revenue\nAcme,3\n"),
		stringInput("broken.csv", "Name,Revenue\nAcme,1\n"),
		stringInput("revenue_2024-01.csv", "CompanyName,Revenue\nAcme,1\n"),
		{
			Name: "gone.csv",
			Open: func() (io.ReadCloser, error) { return nil, errors.New("permission denied") },
		},
		stringInput("revenue_2024-02.csv", "CompanyName,Revenue\nAcme,2\n"),
	}

	sources, rejected, err := NewLoader(2, quietLogger()).Load(context.Background(), inputs)
	require.NoError(t, err)

	require.Len(t, sources, 3)
	assert.Equal(t, "revenue_2024-03.csv", sources[0].Name)
	assert.Equal(t, "revenue_2024-01.csv", sources[1].Name)
	assert.Equal(t, "revenue_2024-02.csv", sources[2].Name)
	assert.Equal(t, 3.0, sources[0].Table.Rows[0]["Revenue"].Number)

	require.Len(t, rejected, 2)
	assert.Equal(t, "broken.csv", rejected[0].SourceName)
	assert.Contains(t, rejected[0].Reason, "CompanyName")
	assert.Equal(t, "gone.csv", rejected[1].SourceName)
	assert.Contains(t, rejected[1].Reason, "permission denied")
}

func TestLoader_DuplicateNames(t *testing.T) {
	tests := []struct {
		name       string
		inputs     []Input
		wantValue  float64
		wantReject int
	}{
		{
			name: "second file with the same name is rejected",
			inputs: []Input{
				stringInput("revenue_2024-01.csv", "CompanyName,Revenue\nAcme,1\n"),
				stringInput("revenue_2024-01.csv", "CompanyName,Revenue\nAcme,99\n"),
			},
			wantValue:  1,
			wantReject: 1,
		},
		{
			name: "unreadable first file leaves the name free",
			inputs: []Input{
				stringInput("revenue_2024-01.csv", "Name,Revenue\nAcme,1\n"),
				stringInput("revenue_2024-01.csv", "CompanyName,Revenue\nAcme,7\n"),
			},
			wantValue:  7,
			wantReject: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources, rejected, err := NewLoader(2, quietLogger()).Load(context.Background(), tt.inputs)
			require.NoError(t, err)

			require.Len(t, sources, 1)
			assert.Equal(t, tt.wantValue, sources[0].Table.Rows[0]["Revenue"].Number)
			require.Len(t, rejected, tt.wantReject)
			assert.Equal(t, "revenue_2024-01.csv", rejected[0].SourceName)
		})
	}
}

func TestLoader_DuplicateNameReason(t *testing.T) {
	inputs := []Input{
		stringInput("a_2024-01.csv", "CompanyName,Revenue\nAcme,1\n"),
		stringInput("a_2024-01.csv", "CompanyName,Revenue\nAcme,2\n"),
	}

	_, rejected, err := NewLoader(1, quietLogger()).Load(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, ReasonDuplicateName, rejected[0].Reason)
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewLoader(1, quietLogger()).Load(ctx, []Input{stringInput("a.csv", "CompanyName\nAcme\n")})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewLoader_Defaults(t *testing.T) {
	l := NewLoader(0, nil)
	assert.Equal(t, DefaultWorkers, l.workers)
	assert.NotNil(t, l.logger)
}

func TestFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"data/revenue_2024-02.csv": {Data: []byte("CompanyName,Revenue\nAcme,2\n")},
		"data/revenue_2024-01.csv": {Data: []byte("CompanyName,Revenue\nAcme,1\n")},
		"data/README.md":           {Data: []byte("demo")},
	}

	inputs, err := FromFS(fsys, "data")
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "revenue_2024-01.csv", inputs[0].Name)

	sources, rejected, err := NewLoader(2, quietLogger()).Load(context.Background(), inputs)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	assert.Len(t, sources, 2)

	_, err = FromFS(fsys, "missing")
	assert.Error(t, err)
}
