package service

import (
	"context"
	"strconv"
	"testing"

	"datacleaner/pkg/model"
	"datacleaner/pkg/sanitizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allColumns() []string {
	cols := make([]string, 0, len(DefaultRules))
	for _, r := range DefaultRules {
		cols = append(cols, r.Column)
	}
	return cols
}

func TestDefaultRules_Examples(t *testing.T) {
	raw := model.Record{
		"Transaction_ID":   "T1",
		"Gender":           "f3m@le",
		"Age":              "007",
		"DOB":              "13/05/2024",
		"Delivery Date":    "02/30/2024",
		"Signup Date":      "1-1-2000",
		"Order Date":       "02/29/2024",
		"Quantity Ordered": "two hundred",
	}

	valid := make([]int, len(DefaultRules))
	got := CleanRecord(raw, DefaultRules, DefaultOptions(), valid)

	assert.Equal(t, sanitizer.GenderFemale, got["Gender_cleaned"])
	assert.Equal(t, "7", got["Age_cleaned"])
	assert.Equal(t, "05-13-2024", got["DOB_cleaned"])
	assert.Nil(t, got["Delivery Date_cleaned"])
	assert.Equal(t, "01-01-2000", got["Signup Date_cleaned"])
	assert.Nil(t, got["Order Date_cleaned"], "leap day is rejected once the year becomes 2025")
	assert.Nil(t, got["Quantity_Ordered_cleaned"], "200 is out of range")

	assert.Equal(t, []int{1, 1, 1, 0, 1, 0, 0}, valid)
	assert.Equal(t, "f3m@le", got["Gender"], "raw value kept")
	_, leaked := raw["Gender_cleaned"]
	assert.False(t, leaked, "input record not modified")
}

func TestDefaultRules_OptionsApplied(t *testing.T) {
	opts := DefaultOptions()
	opts.AgeRange = sanitizer.Range{Min: 18, Max: 65}
	opts.QuantityRange = sanitizer.Range{Min: 1, Max: 500}
	opts.OrderDateFixedYear = 2024

	got := CleanRecord(model.Record{
		"Age":              "17",
		"Order Date":       "02/29/2019",
		"Quantity Ordered": "two hundred",
	}, DefaultRules, opts, nil)

	assert.Nil(t, got["Age_cleaned"])
	assert.Equal(t, "02-29-2024", got["Order Date_cleaned"])
	assert.Equal(t, 200, got["Quantity_Ordered_cleaned"])
}

func TestSplitRules(t *testing.T) {
	applied, skipped := SplitRules(DefaultRules, []string{"Age", "Order Date", "Region"})

	require.Len(t, applied, 2)
	assert.Equal(t, "Age_cleaned", applied[0].Field)
	assert.Equal(t, "Order Date_cleaned", applied[1].Field)
	assert.Equal(t, []string{"Gender", "DOB", "Delivery Date", "Signup Date", "Quantity Ordered"}, skipped)
}

func TestClean_PreservesOrderUnderParallelism(t *testing.T) {
	const n = 1000
	records := make([]model.Record, n)
	wantValid := 0
	for i := range records {
		records[i] = model.Record{"Transaction_ID": i, "Age": strconv.Itoa(i % 120)}
		if i%120 <= 100 {
			wantValid++
		}
	}

	opts := DefaultOptions()
	opts.Workers = 4
	opts.ChunkSize = 7

	out, err := Clean(context.Background(), records, []string{"Transaction_ID", "Age"}, DefaultRules, opts)
	require.NoError(t, err)
	require.Len(t, out.Records, n)

	for i, rec := range out.Records {
		require.Equal(t, i, rec["Transaction_ID"])
		if i%120 <= 100 {
			assert.Equal(t, strconv.Itoa(i%120), rec["Age_cleaned"])
		} else {
			assert.Nil(t, rec["Age_cleaned"])
		}
	}

	require.Len(t, out.Columns, 1)
	assert.Equal(t, model.ColumnReport{Column: "Age", Field: "Age_cleaned", Valid: wantValid, Invalid: n - wantValid}, out.Columns[0])
	assert.Len(t, out.Skipped, len(DefaultRules)-1)
}

func TestClean_MissingValueInPresentColumn(t *testing.T) {
	records := []model.Record{{"Gender": "male"}, {"Age": "3"}}

	out, err := Clean(context.Background(), records, ColumnsOf(records), DefaultRules, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, sanitizer.GenderMale, out.Records[0]["Gender_cleaned"])
	assert.Nil(t, out.Records[0]["Age_cleaned"])
	assert.Nil(t, out.Records[1]["Gender_cleaned"])
	assert.Equal(t, "3", out.Records[1]["Age_cleaned"])
}

func TestClean_ReportsOverwrittenFields(t *testing.T) {
	records := []model.Record{{"Age": "7", "Age_cleaned": "old", "DOB_cleaned": "x"}}

	out, err := Clean(context.Background(), records, ColumnsOf(records), DefaultRules, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Age_cleaned"}, out.Overwritten)
	assert.Equal(t, "7", out.Records[0]["Age_cleaned"])
	assert.Equal(t, "x", out.Records[0]["DOB_cleaned"])
	assert.Equal(t, "old", records[0]["Age_cleaned"], "input record not modified")
}

func TestClean_Empty(t *testing.T) {
	out, err := Clean(context.Background(), nil, []string{"Age"}, DefaultRules, DefaultOptions())
	require.NoError(t, err)

	assert.Empty(t, out.Records)
	assert.Equal(t, []model.ColumnReport{{Column: "Age", Field: "Age_cleaned"}}, out.Columns)
}

func TestClean_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Clean(ctx, []model.Record{{"Age": "1"}}, []string{"Age"}, DefaultRules, DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClean_ZeroWorkersAndChunk(t *testing.T) {
	opts := DefaultOptions()
	opts.Workers = 0
	opts.ChunkSize = 0

	out, err := Clean(context.Background(), []model.Record{{"Age": "0"}, {"Age": "000"}}, []string{"Age"}, DefaultRules, opts)
	require.NoError(t, err)
	assert.Equal(t, "0", out.Records[0]["Age_cleaned"])
	assert.Equal(t, "0", out.Records[1]["Age_cleaned"])
}

func TestColumnsOf(t *testing.T) {
	assert.Equal(t, []string{"Age", "DOB", "Gender"}, ColumnsOf([]model.Record{
		{"Gender": 1, "Age": 2},
		{"DOB": 3, "Age": 4},
	}))
	assert.Nil(t, ColumnsOf(nil))
}
