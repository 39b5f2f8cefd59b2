package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

const fieldsPerRecord = 3

// Read parses training records, one "x,y,category" line each, no header.
// Blank lines are ignored. The first malformed line aborts the whole read
// and no records are returned.
func Read(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = fieldsPerRecord
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	var records []Record
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				return nil, &ParseError{Line: csvErr.Line, Err: csvErr.Err}
			}
			return nil, fmt.Errorf("dataset: read: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRecord(fields)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

func parseRecord(fields []string) (Record, error) {
	x, err := parseCoord(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("x: %w", err)
	}
	y, err := parseCoord(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("y: %w", err)
	}
	label, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Record{}, fmt.Errorf("category: %w", err)
	}
	if label < 0 {
		return Record{}, fmt.Errorf("category: negative value %d", label)
	}
	return Record{X: x, Y: y, Label: label}, nil
}

func parseCoord(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}
