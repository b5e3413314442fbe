// Package wordio reads and writes word lists as CSV or XLSX.
//
// Both formats use the columns source, target, memo. On import a header row
// is optional; english and korean are accepted as aliases for source and
// target, and columns may appear in any order.
package wordio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vytor/vocabflash/internal/models"
	"github.com/xuri/excelize/v2"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

const sheetName = "Sheet1"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var header = []string{"source", "target", "memo"}

var ErrUnknownFormat = errors.New("unknown word file format")

// ParseFormat accepts a format name or a file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "csv":
		return CSV, nil
	case "xlsx":
		return XLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType returns the MIME type used when serving the format.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Read decodes words from r. Rows whose cells are all blank are dropped;
// rows with a missing source or target are kept so the importer can report
// them by position.
func Read(format Format, r io.Reader) ([]models.Word, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case CSV:
		rows, err = readCSV(r)
	case XLSX:
		rows, err = readXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return rowsToWords(rows), nil
}

// Write encodes words to w in the given format with a header row.
func Write(format Format, w io.Writer, words []models.Word) error {
	switch format {
	case CSV:
		return writeCSV(w, words)
	case XLSX:
		return writeXLSX(w, words)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	reader := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

type columns struct {
	source, target, memo int
}

var positional = columns{source: 0, target: 1, memo: 2}

// headerColumns maps a header row to column positions. ok is false when
// the row does not look like a header.
func headerColumns(row []string) (columns, bool) {
	cols := columns{source: -1, target: -1, memo: -1}
	for i, cell := range row {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "source", "source_text", "english", "word":
			cols.source = i
		case "target", "target_text", "korean", "meaning":
			cols.target = i
		case "memo", "note":
			cols.memo = i
		}
	}
	return cols, cols.source >= 0 && cols.target >= 0
}

func rowsToWords(rows [][]string) []models.Word {
	if len(rows) == 0 {
		return nil
	}
	cols := positional
	if hdr, ok := headerColumns(rows[0]); ok {
		cols = hdr
		rows = rows[1:]
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	words := make([]models.Word, 0, len(rows))
	for _, row := range rows {
		w := models.Word{
			SourceText: cell(row, cols.source),
			TargetText: cell(row, cols.target),
			Memo:       cell(row, cols.memo),
		}
		if w.SourceText == "" && w.TargetText == "" && w.Memo == "" {
			continue
		}
		words = append(words, w)
	}
	return words
}

func writeCSV(w io.Writer, words []models.Word) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, word := range words {
		if err := cw.Write([]string{word.SourceText, word.TargetText, word.Memo}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func writeXLSX(w io.Writer, words []models.Word) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, word := range words {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []string{word.SourceText, word.TargetText, word.Memo}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
