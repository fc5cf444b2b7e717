package cycle

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/MrJamesThe3rd/intima/internal/encoding"
)

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006"}

// ParseCSV reads start_date;flow;symptoms rows in any charset with either a
// semicolon or comma delimiter. A header row is optional. Rows without a
// parseable date, such as footers, are skipped.
func ParseCSV(r io.Reader) ([]AppendParams, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	br := bufio.NewReader(utf8r)

	first, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}

	reader := csv.NewReader(br)
	reader.Comma = detectDelimiter(string(first))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCSV, err)
	}

	var out []AppendParams

	for i, row := range rows {
		rowNum := i + 1

		date, ok := parseDate(cellValue(row, 0))
		if !ok {
			continue
		}

		flow, err := ParseFlow(cellValue(row, 1))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		out = append(out, AppendParams{
			StartDate: date,
			Flow:      flow,
			Symptoms:  splitSymptoms(symptomCells(row)),
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no cycle rows found in %s file", ErrInvalidCSV, charset)
	}

	return out, nil
}

func detectDelimiter(head string) rune {
	line, _, _ := strings.Cut(head, "\n")
	if strings.Contains(line, ";") {
		return ';'
	}

	return ','
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func splitSymptoms(s string) []string {
	if s == "" {
		return nil
	}

	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
}

// symptomCells rejoins the tail of a comma-delimited row whose symptom list
// was not quoted.
func symptomCells(row []string) string {
	if len(row) < 3 {
		return ""
	}

	return strings.Join(row[2:], ",")
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
