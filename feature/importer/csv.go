package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseCSV reads comma-separated rows from r, one row per physical line.
// Blank lines are kept as empty rows so header skipping counts physical
// lines. Rows may have varying cell counts; the reconciler tolerates
// short rows.
func ParseCSV(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			rows = append(rows, Row{})
			continue
		}
		reader := csv.NewReader(strings.NewReader(text))
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		record, err := reader.Read()
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv line %d: %w", line, err)
		}
		rows = append(rows, Row(record))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}
