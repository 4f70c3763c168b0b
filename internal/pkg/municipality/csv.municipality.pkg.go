package municipality

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var expectedHeader = []string{"ibge_code", "name", "state"}

// Municipality is one row of the IBGE municipality list.
type Municipality struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// ParseCSV reads ibge_code,name,state rows. Blank lines are skipped and
// duplicate codes keep the first row; a malformed row fails with its line.
func ParseCSV(r io.Reader) ([]Municipality, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("municipality csv is empty")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var (
		out  []Municipality
		seen = map[string]struct{}{}
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, len(expectedHeader), len(record))
		}

		m := Municipality{
			Code:  strings.TrimSpace(record[0]),
			Name:  strings.TrimSpace(record[1]),
			State: strings.ToUpper(strings.TrimSpace(record[2])),
		}
		if m.Code == "" || m.Name == "" || len(m.State) != 2 {
			return nil, fmt.Errorf("line %d: code, name and two-letter state are required", line)
		}
		if _, dup := seen[m.Code]; dup {
			continue
		}
		seen[m.Code] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// WriteJSON encodes the rows as the data file the API loads.
func WriteJSON(w io.Writer, rows []Municipality) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// ParseJSON reads a data file produced by WriteJSON.
func ParseJSON(r io.Reader) ([]Municipality, error) {
	var rows []Municipality
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode municipality json: %w", err)
	}
	return rows, nil
}

func checkHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("unexpected csv header %v", header)
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), expectedHeader[i]) {
			return fmt.Errorf("unexpected csv header %v", header)
		}
	}
	return nil
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
