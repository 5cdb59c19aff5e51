package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/banshee-data/walk.report/internal/monitoring"
)

var (
	// ErrNoXColumnSpecified is returned when no column is marked as the
	// X coordinate.
	ErrNoXColumnSpecified = errors.New("no x column specified in the column actions")

	// ErrNoYColumnSpecified is returned when no column is marked as the
	// Y coordinate.
	ErrNoYColumnSpecified = errors.New("no y column specified in the column actions")

	// ErrColumnActionMismatch is returned when a record's column count does
	// not match the configured column actions.
	ErrColumnActionMismatch = errors.New("record has a different number of columns than actions")
)

type columnActionKind int

const (
	columnKeepX columnActionKind = iota
	columnKeepY
	columnKeepMetadata
	columnDiscard
)

// ColumnAction declares what to do with one CSV column.
type ColumnAction struct {
	kind columnActionKind
	key  string
}

// KeepX marks the column holding the X coordinate (longitude for GCS).
func KeepX() ColumnAction { return ColumnAction{kind: columnKeepX} }

// KeepY marks the column holding the Y coordinate (latitude for GCS).
func KeepY() ColumnAction { return ColumnAction{kind: columnKeepY} }

// KeepMetadata stores the column as metadata under the given key.
func KeepMetadata(key string) ColumnAction {
	return ColumnAction{kind: columnKeepMetadata, key: key}
}

// Discard drops the column.
func Discard() ColumnAction { return ColumnAction{kind: columnDiscard} }

// CSVLoaderOptions configures LoadCSV. ColumnActions must cover every column
// of the file in order and include exactly one KeepX and one KeepY.
type CSVLoaderOptions struct {
	Path           string
	Comma          rune
	Header         bool
	ColumnActions  []ColumnAction
	CoordinateType CoordinateType
}

// LoadCSV reads a dataset from a CSV file according to the given options.
func LoadCSV(opts CSVLoaderOptions) (*Dataset, error) {
	var hasX, hasY bool
	for _, a := range opts.ColumnActions {
		switch a.kind {
		case columnKeepX:
			hasX = true
		case columnKeepY:
			hasY = true
		}
	}
	if !hasX {
		return nil, ErrNoXColumnSpecified
	}
	if !hasY {
		return nil, ErrNoYColumnSpecified
	}

	f, err := os.Open(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if opts.Comma != 0 {
		r.Comma = opts.Comma
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if opts.Header && len(records) > 0 {
		records = records[1:]
	}

	d := New(opts.CoordinateType)
	for i, record := range records {
		if len(record) != len(opts.ColumnActions) {
			return nil, fmt.Errorf("record %d: %w", i, ErrColumnActionMismatch)
		}

		point := Point{Type: opts.CoordinateType}
		metadata := make(map[string]string)

		for col, value := range record {
			var err error
			switch opts.ColumnActions[col].kind {
			case columnKeepX:
				if opts.CoordinateType == CoordinateGCS {
					point.GCS.X, err = strconv.ParseFloat(value, 64)
				} else {
					point.XY.X, err = strconv.ParseInt(value, 10, 64)
				}
			case columnKeepY:
				if opts.CoordinateType == CoordinateGCS {
					point.GCS.Y, err = strconv.ParseFloat(value, 64)
				} else {
					point.XY.Y, err = strconv.ParseInt(value, 10, 64)
				}
			case columnKeepMetadata:
				metadata[opts.ColumnActions[col].key] = value
			}
			if err != nil {
				return nil, fmt.Errorf("record %d column %d: %w", i, col, err)
			}
		}

		d.Push(Datapoint{Point: point, Metadata: metadata})
	}

	monitoring.Logf("[dataset] loaded %d datapoints from %s", d.Len(), opts.Path)
	return d, nil
}
