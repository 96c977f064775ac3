package table

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"datacleaner/pkg/model"
	"datacleaner/pkg/sanitizer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const salesCSV = "\ufeffTransaction_ID,Gender,Age,Quantity Ordered\n" +
	"T1,female,007,two\n" +
	"T2, m ,abc,\"1,000\"\n" +
	"T3,fem@le\n"

func TestRead(t *testing.T) {
	tbl, err := Read(strings.NewReader(salesCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Transaction_ID", "Gender", "Age", "Quantity Ordered"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len())

	assert.Equal(t, "007", tbl.Rows[0]["Age"])
	assert.Equal(t, " m ", tbl.Rows[1]["Gender"], "raw cell kept as is")
	assert.Equal(t, "1,000", tbl.Rows[1]["Quantity Ordered"])

	_, ok := tbl.Rows[2]["Age"]
	assert.False(t, ok, "short row leaves missing columns absent")
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Read(strings.NewReader("a,b\n1,2,3\n"))
	assert.ErrorContains(t, err, "record 1 has 3 fields")
}

func TestRead_DuplicateHeaders(t *testing.T) {
	tbl, err := Read(strings.NewReader("Age,Age,Age\n1,2,3\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Age", "Age.1", "Age.2"}, tbl.Columns)
	assert.Equal(t, "3", tbl.Rows[0]["Age.2"])
}

func TestWrite_RoundTrip(t *testing.T) {
	tbl, err := Read(strings.NewReader(salesCSV))
	require.NoError(t, err)

	tbl.AppendColumn("Age_cleaned")
	tbl.AppendColumn("Age_cleaned")
	tbl.Rows[0]["Age_cleaned"] = sanitizer.NormalizeAge(tbl.Rows[0]["Age"], sanitizer.DefaultAgeRange).Any()
	tbl.Rows[1]["Age_cleaned"] = sanitizer.NormalizeAge(tbl.Rows[1]["Age"], sanitizer.DefaultAgeRange).Any()

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(&buf))

	want := "Transaction_ID,Gender,Age,Quantity Ordered,Age_cleaned\n" +
		"T1,female,007,two,7\n" +
		"T2,\" m \",abc,\"1,000\",\n" +
		"T3,fem@le,,,\n"
	assert.Equal(t, want, buf.String())

	again, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns, again.Columns)
	assert.Equal(t, "7", again.Rows[0]["Age_cleaned"])
}

func TestRead_KeepsWhitespace(t *testing.T) {
	tbl, err := Read(strings.NewReader("Gender,Age\n  Female, 007\n"))
	require.NoError(t, err)
	assert.Equal(t, "  Female", tbl.Rows[0]["Gender"])
	assert.Equal(t, " 007", tbl.Rows[0]["Age"])

	var buf bytes.Buffer
	require.NoError(t, tbl.Write(&buf))

	again, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, tbl.Rows, again.Rows)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	tbl := &Table{Columns: []string{"a"}, Rows: []model.Record{{"a": 1}}}

	require.NoError(t, tbl.WriteFile(path))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1", got.Rows[0]["a"])

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestFormatCell(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{42, "42"},
		{float64(7), "7"},
		{2.5, "2.5"},
		{true, "true"},
		{sanitizer.GenderFemale, "F"},
	}
	for _, tt := range tests {
		if got := FormatCell(tt.in); got != tt.want {
			t.Errorf("FormatCell(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFromRecords(t *testing.T) {
	tbl := FromRecords([]model.Record{
		{"b": 1, "a": 2},
		{"c": 3, "a": 4},
	})
	assert.Equal(t, []string{"a", "b", "c"}, tbl.Columns)
	assert.Equal(t, 2, tbl.Len())
}

func TestProfile(t *testing.T) {
	tbl, err := Read(strings.NewReader("Gender,Age\nF,1\nM,1\nF,2\nx,3\n"))
	require.NoError(t, err)

	profiles := Profile(tbl, []string{"Gender", "Age", "DOB"}, 2)
	require.Len(t, profiles, 3)

	assert.Equal(t, []string{"F", "M"}, profiles[0].Values)
	assert.Equal(t, 3, profiles[0].Unique)
	assert.True(t, profiles[0].Truncated)
	assert.False(t, profiles[2].Found)

	var buf bytes.Buffer
	require.NoError(t, WriteProfile(&buf, profiles))
	assert.Equal(t, "Unique values per column:\n"+
		"Gender: [\"F\" \"M\"] ...\n"+
		"Age: [\"1\" \"2\"] ...\n"+
		"DOB: Column not found\n", buf.String())
}

func TestProfile_NoLimit(t *testing.T) {
	tbl, err := Read(strings.NewReader("Age\n1\n2\n1\n"))
	require.NoError(t, err)

	p := Profile(tbl, []string{"Age"}, 0)[0]
	assert.Equal(t, []string{"1", "2"}, p.Values)
	assert.False(t, p.Truncated)
}
