package convert

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/elaadnl/openadr3-go/model"
)

func TestIntervalsFromRecords(t *testing.T) {
	is := is.New(t)

	records := [][]string{
		{"start", "duration", "randomize_start", "type", "values"},
		{"2024-03-01T13:00:00Z", "PT1H", "", "SIMPLE", "1"},
		{"", "", "", "PRICE", "0.25;0.30"},
		{"", "", "", "ALERT_GRID_EMERGENCY", "true;stay indoors"},
	}

	intervals, err := IntervalsFromRecords(records)
	is.NoErr(err)
	is.Equal(len(intervals), 3)

	first := intervals[0]
	is.Equal(first.IntervalPeriod.Start, time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC))
	is.Equal(first.IntervalPeriod.Duration, model.Duration(time.Hour))
	is.True(first.IntervalPeriod.RandomizeStart == nil)
	is.True(first.Payloads[0].Values[0].Equal(model.NumberValue(1)))

	// Cells coerce to the most specific type: number, then bool, then string.
	mixed := intervals[2].Payloads[0].Values
	is.True(mixed[0].Equal(model.BoolValue(true)))
	is.True(mixed[1].Equal(model.StringValue("stay indoors")))
}

func TestIntervalsFromRecordsRequiresHeader(t *testing.T) {
	is := is.New(t)

	_, err := IntervalsFromRecords(nil)
	is.True(err != nil)
}

func TestIntervalsFromRecordsFieldCountMismatch(t *testing.T) {
	is := is.New(t)

	records := [][]string{
		{"type", "values"},
		{"SIMPLE"},
	}
	_, err := IntervalsFromRecords(records)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), "record 1"))
}

func TestRecordsRoundTrip(t *testing.T) {
	is := is.New(t)

	original := []model.Interval{
		{
			ID: 0,
			IntervalPeriod: &model.IntervalPeriod{
				Start:    time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
				Duration: model.Duration(time.Hour),
			},
			Payloads: []model.Payload{
				{Type: model.PayloadSimple, Values: []model.Value{model.NumberValue(2)}},
			},
		},
		{
			ID: 1,
			Payloads: []model.Payload{
				{Type: model.PayloadPrice, Values: []model.Value{model.NumberValue(0.25), model.NumberValue(0.3)}},
			},
		},
	}

	records := RecordsFromIntervals(original)
	is.Equal(records[0], []string{"start", "duration", "randomize_start", "type", "values"})
	is.Equal(len(records), 3)

	back, err := IntervalsFromRecords(records)
	is.NoErr(err)
	is.Equal(back, original)
}

func TestCSVReadWrite(t *testing.T) {
	is := is.New(t)

	intervals := []model.Interval{{
		ID: 0,
		IntervalPeriod: &model.IntervalPeriod{
			Start:    time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC),
			Duration: model.Duration(15 * time.Minute),
		},
		Payloads: []model.Payload{
			{Type: model.PayloadSimple, Values: []model.Value{model.NumberValue(1)}},
		},
	}}

	var buf bytes.Buffer
	is.NoErr(WriteIntervalsCSV(&buf, intervals))
	is.True(strings.Contains(buf.String(), "2024-03-01T13:00:00Z,PT15M,,SIMPLE,1"))

	back, err := ReadIntervalsCSV(&buf)
	is.NoErr(err)
	is.Equal(back, intervals)
}
