// Package hdf reads the ESB Networks harmonised data file (HDF) export, the
// row format smart-meter portals hand out for interval readings.
package hdf

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	billing "meterbill/internal/billing/domain"
)

// timeLayout matches "08-01-2024 03:30": day-month-year, 24h clock, no zone.
const timeLayout = "02-01-2006 15:04"

const (
	readTypeImport = "Active Import Interval (kW)"
	readTypeExport = "Active Export Interval (kW)"
)

const (
	colMPRN  = "MPRN"
	colMeter = "Meter Serial Number"
	colValue = "Read Value"
	colType  = "Read Type"
	colTime  = "Read Date and End Time"
)

// DropReason classifies why a row was excluded from the reading set.
type DropReason string

const (
	// DropBadReadType marks rows whose read type is neither import nor export.
	DropBadReadType DropReason = "read_type"
	// DropBadValue marks rows whose read value is not a non-negative number.
	DropBadValue DropReason = "value"
	// DropBadTimestamp marks rows whose timestamp does not parse.
	DropBadTimestamp DropReason = "timestamp"
	// DropShortRow marks rows with fewer columns than the header.
	DropShortRow DropReason = "columns"
)

// Result carries the parsed readings, in file order, plus drop accounting.
// Dropped rows never reach the pricing engine; the counts exist so the
// driver can report them.
type Result struct {
	Readings []billing.Reading
	Dropped  map[DropReason]int
}

// DroppedTotal returns the number of rows excluded across all reasons.
func (r Result) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// ReadFile parses an HDF export from disk.
func ReadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses HDF rows. Malformed rows are dropped and counted, never
// surfaced as errors; a missing required column is an error because the
// whole file is unusable.
func Read(r io.Reader) (Result, error) {
	result := Result{Dropped: make(map[DropReason]int)}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return result, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("hdf: read header: %w", err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return Result{}, err
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("hdf: read row: %w", err)
		}

		reading, reason, ok := parseRow(record, columns)
		if !ok {
			result.Dropped[reason]++
			continue
		}
		result.Readings = append(result.Readings, reading)
	}
	return result, nil
}

type columnIndex struct {
	mprn  int
	meter int
	value int
	typ   int
	time  int
}

func indexColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[strings.TrimSpace(name)] = i
	}

	idx := columnIndex{}
	for _, col := range []struct {
		name string
		dst  *int
	}{
		{colMPRN, &idx.mprn},
		{colMeter, &idx.meter},
		{colValue, &idx.value},
		{colType, &idx.typ},
		{colTime, &idx.time},
	} {
		pos, ok := positions[col.name]
		if !ok {
			return columnIndex{}, fmt.Errorf("hdf: missing column %q", col.name)
		}
		*col.dst = pos
	}
	return idx, nil
}

func parseRow(record []string, columns columnIndex) (billing.Reading, DropReason, bool) {
	maxIdx := columns.mprn
	for _, i := range []int{columns.meter, columns.value, columns.typ, columns.time} {
		if i > maxIdx {
			maxIdx = i
		}
	}
	if maxIdx >= len(record) {
		return billing.Reading{}, DropShortRow, false
	}

	direction, ok := mapReadType(strings.TrimSpace(record[columns.typ]))
	if !ok {
		return billing.Reading{}, DropBadReadType, false
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(record[columns.value]), 64)
	if err != nil || value < 0 {
		return billing.Reading{}, DropBadValue, false
	}

	endTime, err := time.Parse(timeLayout, strings.TrimSpace(record[columns.time]))
	if err != nil {
		return billing.Reading{}, DropBadTimestamp, false
	}

	reading, err := billing.NewReading(
		strings.TrimSpace(record[columns.mprn]),
		strings.TrimSpace(record[columns.meter]),
		direction,
		value,
		endTime,
	)
	if err != nil {
		return billing.Reading{}, DropBadValue, false
	}
	return reading, "", true
}

func mapReadType(value string) (billing.FlowDirection, bool) {
	switch value {
	case readTypeImport:
		return billing.FlowImport, true
	case readTypeExport:
		return billing.FlowExport, true
	default:
		return "", false
	}
}
