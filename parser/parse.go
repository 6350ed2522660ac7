package parser

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"roster-scheduler/errors"
	"roster-scheduler/metrics"
	"roster-scheduler/models"
)

// Column names as they appear in the roster CSV header. Matching is
// case-insensitive and column order is free; Email may be omitted.
const (
	colID             = "interviewer_id"
	colName           = "name"
	colEmail          = "email"
	colDayAvailable   = "day_available"
	colNightAvailable = "night_available"
	colDaySlots       = "day_slots"
	colNightSlots     = "night_slots"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Parse reads the interviewer roster CSV from the reader.
//
// The first non-comment row is the header; lines starting with '#' are
// skipped. A malformed row (wrong field count, bad boolean or slot
// value, duplicate ID, failed validation) is logged, recorded in the
// returned diagnostics, and skipped — the load continues. Parse fails
// only when a required column is missing from the header or no valid
// record remains at EOF.
func Parse(r io.Reader, log *zap.Logger) ([]models.Interviewer, []*errors.RecordError, error) {
	start := time.Now()
	defer func() {
		metrics.ParserDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var (
		interviewers []models.Interviewer
		diags        []*errors.RecordError
		columns      map[string]int
	)
	seen := make(map[string]bool)
	lineNum := 0

	for {
		record, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, diags, fmt.Errorf("error reading CSV at line %d: %w", lineNum, err)
		}

		if len(record) > 0 && strings.HasPrefix(record[0], "#") {
			continue
		}

		// First data row is the header.
		if columns == nil {
			columns, err = mapColumns(record)
			if err != nil {
				return nil, diags, err
			}
			continue
		}

		iv, err := parseRow(record, columns)
		if err == nil && seen[iv.ID] {
			err = fmt.Errorf("%w: %s", errors.ErrDuplicateID, iv.ID)
		}
		if err != nil {
			re := &errors.RecordError{Line: lineNum, Record: record, Err: err}
			diags = append(diags, re)
			metrics.ParserSkippedTotal.WithLabelValues(skipReason(err)).Inc()
			log.Warn("skipping malformed record",
				zap.Int("line", lineNum),
				zap.Strings("record", record),
				zap.Error(err),
			)
			continue
		}

		seen[iv.ID] = true
		interviewers = append(interviewers, iv)
		metrics.ParserRecordsTotal.Inc()
	}

	if len(interviewers) == 0 {
		return nil, diags, errors.ErrNoValidRecords
	}
	return interviewers, diags, nil
}

// mapColumns resolves header names to field positions.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colID, colName, colDayAvailable, colNightAvailable, colDaySlots, colNightSlots} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", errors.ErrMissingColumn, required)
		}
	}
	return columns, nil
}

func parseRow(record []string, columns map[string]int) (models.Interviewer, error) {
	iv := models.Interviewer{}

	for _, idx := range columns {
		if idx >= len(record) {
			return iv, fmt.Errorf("%w: got %d fields, header has %d columns",
				errors.ErrInvalidFieldCount, len(record), len(columns))
		}
	}

	iv.ID = field(record, columns, colID)
	iv.Name = field(record, columns, colName)
	iv.Email = field(record, columns, colEmail)

	var err error
	if iv.DayAvailable, err = parseBool(field(record, columns, colDayAvailable)); err != nil {
		return iv, fmt.Errorf("%w: %v", errors.ErrInvalidAvailability, err)
	}
	if iv.NightAvailable, err = parseBool(field(record, columns, colNightAvailable)); err != nil {
		return iv, fmt.Errorf("%w: %v", errors.ErrInvalidAvailability, err)
	}
	if iv.DaySlots, err = parseSlots(field(record, columns, colDaySlots)); err != nil {
		return iv, fmt.Errorf("%w: %v", errors.ErrInvalidSlotCount, err)
	}
	if iv.NightSlots, err = parseSlots(field(record, columns, colNightSlots)); err != nil {
		return iv, fmt.Errorf("%w: %v", errors.ErrInvalidSlotCount, err)
	}

	if err := validate.Struct(iv); err != nil {
		return iv, fmt.Errorf("%w: %v", errors.ErrInvalidRecord, err)
	}
	return iv, nil
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

// parseBool accepts the spellings seen in roster exports.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	default:
		return false, fmt.Errorf("cannot parse %q as boolean", value)
	}
}

func parseSlots(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, stderrors.New("slot count cannot be negative")
	}
	return n, nil
}

// skipReason buckets a row failure for the skip counter.
func skipReason(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrInvalidFieldCount):
		return "field_count"
	case stderrors.Is(err, errors.ErrInvalidAvailability):
		return "availability"
	case stderrors.Is(err, errors.ErrInvalidSlotCount):
		return "slot_count"
	case stderrors.Is(err, errors.ErrDuplicateID):
		return "duplicate_id"
	case stderrors.Is(err, errors.ErrInvalidRecord):
		return "validation"
	default:
		return "other"
	}
}
