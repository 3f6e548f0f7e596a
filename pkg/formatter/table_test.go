package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_String(t *testing.T) {
	table := NewTable([]string{"Key", "Value"})
	table.AddRow("size", "12 B")
	table.AddRow("provider", "AWS")

	want := "+----------+-------+\n" +
		"| Key      | Value |\n" +
		"+----------+-------+\n" +
		"| size     | 12 B  |\n" +
		"| provider | AWS   |\n" +
		"+----------+-------+"
	assert.Equal(t, want, table.String())
}

func TestTable_RaggedRows(t *testing.T) {
	table := NewTable([]string{"A", "B"})
	table.AddRow("only")
	table.AddRow("x", "y", "dropped")

	want := "+------+---+\n" +
		"| A    | B |\n" +
		"+------+---+\n" +
		"| only |   |\n" +
		"| x    | y |\n" +
		"+------+---+"
	assert.Equal(t, want, table.String())
}

func TestTable_WideCharacters(t *testing.T) {
	table := NewTable([]string{"Name"})
	table.AddRow("Zürich")

	assert.Equal(t, "+--------+\n| Name   |\n+--------+\n| Zürich |\n+--------+", table.String())
}

func TestTable_NoHeaders(t *testing.T) {
	assert.Empty(t, NewTable(nil).String())
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{-1, "unknown"},
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.50 KiB"},
		{5 * 1024 * 1024, "5.00 MiB"},
		{3 << 30, "3.00 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in), "FormatBytes(%d)", tt.in)
	}
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("")
	assert.NoError(t, err)
	assert.Equal(t, FormatTable, f)

	f, err = ParseOutputFormat(" JSON ")
	assert.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseOutputFormat("xml")
	assert.ErrorContains(t, err, "unsupported output format")
}
