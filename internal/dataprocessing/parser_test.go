package dataprocessing

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"revcompare/pkg/contracts/domain"
)

// TestParseFile ensures that ParseFile extracts rows from a well-formed
// workbook whose header sits below a title row.
func TestParseFile(t *testing.T) {
	tmpDir := t.TempDir()

	f := excelize.NewFile()
	sheetName := "Revenue"
	f.SetSheetName(f.GetSheetName(0), sheetName)

	require.NoError(t, f.SetCellValue(sheetName, "A1", "Company Revenue Report"))
	require.NoError(t, f.SetSheetRow(sheetName, "A3", &[]interface{}{"CompanyName", "CompanyCode", "RoomRevenue", "Occupancy"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A4", &[]interface{}{"Acme", "AC", 1250.5, "81%"}))
	require.NoError(t, f.SetSheetRow(sheetName, "A5", &[]interface{}{"Globex", "GX", "1,000", 64}))

	filePath := filepath.Join(tmpDir, "revenue_2025-01.xlsx")
	require.NoError(t, f.SaveAs(filePath))

	table, err := ParseFile(filePath)
	require.NoError(t, err)

	assert.Equal(t, "revenue_2025-01.xlsx", table.Name)
	assert.Equal(t, []string{"CompanyName", "CompanyCode", "RoomRevenue", "Occupancy"}, table.Columns)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, "Acme", table.Rows[0].Label())
	assert.True(t, table.Rows[0]["RoomRevenue"].Numeric)
	assert.Equal(t, 1250.5, table.Rows[0]["RoomRevenue"].Number)
	assert.False(t, table.Rows[0]["Occupancy"].Numeric)
	assert.Equal(t, 1000.0, table.Rows[1]["RoomRevenue"].Number)
	assert.False(t, table.Rows[1]["CompanyCode"].Numeric)
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantErr   error
		wantRows  int
		wantCols  []string
		checkRows func(t *testing.T, table domain.Table)
	}{
		{
			name:     "plain report",
			content:  "CompanyName,CompanyCode,Revenue\nAcme,AC,100\nGlobex,GX,200\n",
			wantRows: 2,
			wantCols: []string{"CompanyName", "CompanyCode", "Revenue"},
			checkRows: func(t *testing.T, table domain.Table) {
				assert.Equal(t, 100.0, table.Rows[0]["Revenue"].Number)
				assert.Equal(t, "GX", table.Rows[1]["CompanyCode"].Raw)
			},
		},
		{
			name:     "byte order mark and blank lines",
			content:  "\xEF\xBB\xBFCompanyName,Revenue\n\nAcme,\"1,500\"\n,\n",
			wantRows: 1,
			wantCols: []string{"CompanyName", "Revenue"},
			checkRows: func(t *testing.T, table domain.Table) {
				assert.Equal(t, 1500.0, table.Rows[0]["Revenue"].Number)
			},
		},
		{
			name:     "short record is padded",
			content:  "CompanyName,Revenue,Rooms\nAcme,10\n",
			wantRows: 1,
			wantCols: []string{"CompanyName", "Revenue", "Rooms"},
			checkRows: func(t *testing.T, table domain.Table) {
				assert.False(t, table.Rows[0]["Rooms"].Numeric)
				assert.Equal(t, "", table.Rows[0]["Rooms"].Raw)
			},
		},
		{
			name:     "non-finite values are missing",
			content:  "CompanyName,Revenue\nA,100\nB,NaN\nC,inf\nD,-Infinity\nE,nan\nF,+Inf\n",
			wantRows: 6,
			wantCols: []string{"CompanyName", "Revenue"},
			checkRows: func(t *testing.T, table domain.Table) {
				assert.True(t, table.Rows[0]["Revenue"].Numeric)
				for _, row := range table.Rows[1:] {
					assert.False(t, row["Revenue"].Numeric, row.Label())
				}
				assert.Equal(t, "NaN", table.Rows[1]["Revenue"].Raw)
			},
		},
		{
			name:     "interior blank header is dropped",
			content:  "CompanyName,,Revenue\nAcme,note,10\nGlobex,,20\n",
			wantRows: 2,
			wantCols: []string{"CompanyName", "Revenue"},
			checkRows: func(t *testing.T, table domain.Table) {
				assert.Equal(t, 10.0, table.Rows[0]["Revenue"].Number)
				assert.Equal(t, 20.0, table.Rows[1]["Revenue"].Number)
				assert.NotContains(t, table.Rows[0], "")
			},
		},
		{
			name:     "repeated header keeps the first column",
			content:  "CompanyName,Revenue,Revenue\nAcme,1,2\n",
			wantRows: 1,
			wantCols: []string{"CompanyName", "Revenue"},
			checkRows: func(t *testing.T, table domain.Table) {
				assert.Equal(t, 1.0, table.Rows[0]["Revenue"].Number)
			},
		},
		{
			name:    "missing company column",
			content: "Name,Revenue\nAcme,10\n",
			wantErr: ErrMissingCompanyName,
		},
		{
			name:    "empty input",
			content: "",
			wantErr: ErrNoHeader,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParseCSV("revenue_2024-01.csv", strings.NewReader(tt.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, table.Columns)
			assert.Len(t, table.Rows, tt.wantRows)
			if tt.checkRows != nil {
				tt.checkRows(t, table)
			}
		})
	}
}

func TestParse_Dispatch(t *testing.T) {
	_, err := Parse("report_2024-01.pdf", bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse("report_2024-01.xlsx", strings.NewReader("not a workbook"))
	assert.Error(t, err)

	table, err := Parse("REPORT_2024-01.CSV", strings.NewReader("CompanyName,Revenue\nAcme,1\n"))
	require.NoError(t, err)
	assert.Len(t, table.Rows, 1)
}

func TestParseExcel_NoHeader(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Name"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Revenue"))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ParseExcel("revenue_2024-02.xlsx", &buf)
	assert.ErrorIs(t, err, ErrMissingCompanyName)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("a.csv"))
	assert.True(t, IsSupported("a.XLSX"))
	assert.False(t, IsSupported("a.xls"))
	assert.False(t, IsSupported("a.txt"))
}
