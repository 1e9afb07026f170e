package tabular

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildXLSX(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestReadCSV(t *testing.T) {
	csvContent := " Register_Number ,SUBJECT_CODE,marks,student_name\nREG1,MATH101,88,Alice\nREG2,PHYS101,91,Bob"

	table, err := Read(strings.NewReader(csvContent), "marks.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"register_number", "subject_code", "marks", "student_name"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "REG1", table.Rows[0]["register_number"])
	assert.Equal(t, "MATH101", table.Rows[0]["subject_code"])
	assert.Equal(t, "91", table.Rows[1]["marks"])
}

func TestReadCSVRaggedRows(t *testing.T) {
	csvContent := "register_number,subject_code,marks\nREG1,MATH101,88,extra\nREG2,PHYS101"

	table, err := Read(strings.NewReader(csvContent), "marks.csv")
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	// Extra cells are dropped, short rows leave columns absent.
	assert.Equal(t, "88", table.Rows[0]["marks"])
	_, ok := table.Rows[1]["marks"]
	assert.False(t, ok)
}

func TestReadXLSX(t *testing.T) {
	data := buildXLSX(t, [][]interface{}{
		{"Register_Number", "Subject_Code", "Marks"},
		{"REG1", "MATH101", 88},
	})

	table, err := Read(bytes.NewReader(data), "marks.xlsx")
	require.NoError(t, err)

	assert.Equal(t, []string{"register_number", "subject_code", "marks"}, table.Columns)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "REG1", table.Rows[0]["register_number"])
	assert.Equal(t, "88", table.Rows[0]["marks"])
}

func TestReadEmptyFile(t *testing.T) {
	table, err := Read(strings.NewReader(""), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Empty(t, table.Rows)

	table, err = Read(strings.NewReader("register_number,subject_code,marks\n"), "header_only.csv")
	require.NoError(t, err)
	assert.Len(t, table.Columns, 3)
	assert.Empty(t, table.Rows)
}

func TestReadUnsupportedFormat(t *testing.T) {
	for _, name := range []string{"marks.pdf", "marks.xls", "marks", "marks.txt"} {
		_, err := Read(strings.NewReader("data"), name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
	}
}

func TestReadParseError(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n\"unclosed"), "bad.csv")
	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "csv", parseErr.Format)

	_, err = Read(strings.NewReader("this is not a zip archive"), "bad.xlsx")
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "xlsx", parseErr.Format)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("marks.csv"))
	assert.True(t, Supported("MARKS.XLSX"))
	assert.False(t, Supported("marks.xls"))
	assert.False(t, Supported("marks"))
}
