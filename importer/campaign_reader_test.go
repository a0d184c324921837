package importer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

const sampleCSV = "Campaign,Product,Demand Value,Start Date,End Date\n" +
	"A,x1,10,1-Jan,2-Jan\n" +
	"A,x2,5,3-Jan,4-Jan\n" +
	"B,y1,20,1-Jan,2-Jan\n"

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Campaign", "Product", "Demand Value", "Start Date", "End Date"}, table.Header)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"B", "y1", "20", "1-Jan", "2-Jan"}, table.Rows[2])
}

func TestReadCSVStripsBOM(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\xef\xbb\xbf" + sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, "Campaign", table.Header[0])
}

func TestReadCSVWindows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String("Campaign,Product,Demand Value,Start Date,End Date\nFrühling,Schuh,1,1-Mar,2-Mar\n")
	require.NoError(t, err)

	table, err := ReadCSV(strings.NewReader(encoded))
	require.NoError(t, err)
	assert.Equal(t, "Frühling", table.Rows[0][0])
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmptyFile))

	_, err = ReadCSV(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Campaign", "Product", "Demand Value", "Start Date", "End Date"},
		{"A", "x1", 10, "1-Jan", "2-Jan"},
		{},
		{"B", "y1", 20.5, "1-Feb", "2-Feb"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	table, err := ReadFile("upload.XLSX", &buf)
	require.NoError(t, err)
	assert.Equal(t, "Demand Value", table.Header[2])
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "20.5", table.Rows[1][2])
}

func TestReadFileUnsupported(t *testing.T) {
	_, err := ReadFile("data.json", strings.NewReader("{}"))
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestReadXLSXCorrupt(t *testing.T) {
	_, err := ReadFile("data.xlsx", strings.NewReader("not a zip archive"))
	assert.ErrorIs(t, err, ErrUnreadableFile)
}
