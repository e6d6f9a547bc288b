// Package convert translates between event intervals and flat tabular
// representations: rows keyed by column name and CSV records. The flat
// form carries one payload per row with the interval period columns
// repeated, which round-trips cleanly with intervals holding a single
// payload each.
package convert

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/elaadnl/openadr3-go/model"
)

// Row is one flattened event interval: the interval period columns
// (start, duration, randomize_start) next to the payload columns
// (type, values).
type Row = map[string]any

// Column names of the flat representation.
const (
	ColStart          = "start"
	ColDuration       = "duration"
	ColRandomizeStart = "randomize_start"
	ColType           = "type"
	ColValues         = "values"
)

// IntervalsFromRows converts flattened rows into event intervals. The
// row position becomes the interval id, and a row carries an interval
// period exactly when its start column is set. Rows are converted
// independently; errors are collected per row and returned joined, so
// one bad row does not hide the others.
func IntervalsFromRows(rows []Row) ([]model.Interval, error) {
	intervals := make([]model.Interval, 0, len(rows))
	var errs []error
	for i, row := range rows {
		interval, err := intervalFromRow(i, row)
		if err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		intervals = append(intervals, interval)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return intervals, nil
}

func intervalFromRow(id int, row Row) (model.Interval, error) {
	payload, err := payloadFromRow(row)
	if err != nil {
		return model.Interval{}, err
	}

	interval := model.Interval{ID: id, Payloads: []model.Payload{payload}}
	if start, ok := row[ColStart]; ok && start != nil {
		period, err := periodFromRow(row)
		if err != nil {
			return model.Interval{}, err
		}
		interval.IntervalPeriod = period
	}
	if err := interval.Validate(); err != nil {
		return model.Interval{}, err
	}
	return interval, nil
}

func payloadFromRow(row Row) (model.Payload, error) {
	rawType, ok := row[ColType]
	if !ok {
		return model.Payload{}, errors.New("missing type column")
	}
	typ, ok := rawType.(string)
	if !ok {
		return model.Payload{}, fmt.Errorf("type column must be a string, got %T", rawType)
	}

	rawValues, ok := row[ColValues]
	if !ok {
		return model.Payload{}, errors.New("missing values column")
	}
	values, err := coerceValues(rawValues)
	if err != nil {
		return model.Payload{}, err
	}
	return model.Payload{Type: model.PayloadType(typ), Values: values}, nil
}

func coerceValues(raw any) ([]model.Value, error) {
	switch vs := raw.(type) {
	case []model.Value:
		return vs, nil
	case []any:
		values := make([]model.Value, len(vs))
		for i, x := range vs {
			v, err := model.ValueOf(x)
			if err != nil {
				return nil, fmt.Errorf("values[%d]: %w", i, err)
			}
			values[i] = v
		}
		return values, nil
	default:
		v, err := model.ValueOf(raw)
		if err != nil {
			return nil, fmt.Errorf("values column: %w", err)
		}
		return []model.Value{v}, nil
	}
}

func periodFromRow(row Row) (*model.IntervalPeriod, error) {
	start, err := coerceTime(row[ColStart])
	if err != nil {
		return nil, fmt.Errorf("start column: %w", err)
	}
	period := &model.IntervalPeriod{Start: start}

	if raw, ok := row[ColDuration]; ok && raw != nil {
		d, err := coerceDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("duration column: %w", err)
		}
		period.Duration = d
	}
	if raw, ok := row[ColRandomizeStart]; ok && raw != nil {
		d, err := coerceDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("randomize_start column: %w", err)
		}
		period.RandomizeStart = &d
	}
	return period, nil
}

func coerceTime(raw any) (time.Time, error) {
	switch t := raw.(type) {
	case time.Time:
		return t, nil
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, err
		}
		return parsed, nil
	default:
		return time.Time{}, fmt.Errorf("unsupported time type %T", raw)
	}
}

func coerceDuration(raw any) (model.Duration, error) {
	switch d := raw.(type) {
	case model.Duration:
		return d, nil
	case time.Duration:
		return model.Duration(d), nil
	case string:
		return model.ParseDuration(d)
	default:
		return 0, fmt.Errorf("unsupported duration type %T", raw)
	}
}

// RowsFromIntervals flattens event intervals into rows ordered by
// interval id, one row per payload with the interval period columns
// repeated. Start times are normalized to UTC. Rows produced here feed
// back through IntervalsFromRows unchanged when every interval holds
// one payload.
func RowsFromIntervals(intervals []model.Interval) []Row {
	ordered := make([]model.Interval, len(intervals))
	copy(ordered, intervals)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	var rows []Row
	for _, interval := range ordered {
		for _, payload := range interval.Payloads {
			row := Row{
				ColType:   string(payload.Type),
				ColValues: payload.Values,
			}
			if p := interval.IntervalPeriod; p != nil {
				row[ColStart] = p.Start.UTC()
				row[ColDuration] = p.Duration
				if p.RandomizeStart != nil {
					row[ColRandomizeStart] = *p.RandomizeStart
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}
