package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablify(t *testing.T) {
	testCases := []struct {
		name     string
		data     map[string]map[string]any
		opts     TableOptions
		expected string
	}{
		{
			name: "default ordering sorts rows and columns",
			data: map[string]map[string]any{
				"b": {"y": 1, "x": 2},
				"a": {"y": 3, "x": 4},
			},
			opts:     TableOptions{ShowHeader: true},
			expected: "  x y\na 4 3\nb 2 1",
		},
		{
			name: "header row-key cell is blank and as wide as the widest key",
			data: map[string]map[string]any{
				"1000": {"Opened": "12"},
			},
			opts:     TableOptions{ShowHeader: true, RowOrder: []string{"1000"}, ColOrder: []string{"Opened"}},
			expected: "     Opened\n1000     12",
		},
		{
			name: "explicit row order wins over sorting",
			data: map[string]map[string]any{
				"a": {"n": 1},
				"b": {"n": 2},
			},
			opts:     TableOptions{RowOrder: []string{"b", "a"}, ColOrder: []string{"n"}},
			expected: "b 2\na 1",
		},
		{
			name: "padding widens the gap between columns",
			data: map[string]map[string]any{
				"r": {"n": 1},
			},
			opts:     TableOptions{RowOrder: []string{"r"}, ColOrder: []string{"n"}, Padding: 3},
			expected: "r   1",
		},
		{
			name:     "empty data with empty row order renders nothing",
			data:     map[string]map[string]any{},
			opts:     TableOptions{RowOrder: []string{}},
			expected: "",
		},
		{
			name:     "empty data with explicit columns renders a header only",
			data:     map[string]map[string]any{},
			opts:     TableOptions{ShowHeader: true, RowOrder: []string{}, ColOrder: []string{"Opened"}},
			expected: " Opened",
		},
		{
			name: "item list format drops the row-key column and left-justifies",
			data: map[string]map[string]any{
				"0": {"id": "12", "type": "defect"},
				"1": {"id": "7", "type": "enhancement"},
			},
			opts: TableOptions{
				RowOrder: []string{"0", "1"},
				ColOrder: []string{"id", "type"},
				Padding:  2,
				Format:   ItemListFormat,
			},
			expected: "12  defect     \n7   enhancement",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Tablify(tc.data, tc.opts))
		})
	}
}

// Column widths must accommodate every cell: with the default formatter all
// rendered lines come out the same width and no cell is truncated.
func TestTablify_WidthsFitAllCells(t *testing.T) {
	data := map[string]map[string]any{
		"short":              {"Opened": 1, "Closed": 123456},
		"a much longer name": {"Opened": 99, "Closed": 0},
	}
	out := Tablify(data, TableOptions{ShowHeader: true, Padding: 2})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines[1:] {
		assert.Equal(t, len(lines[0]), len(line), "line %q differs in width from the header", line)
	}
	assert.Contains(t, out, "123456")
	assert.Contains(t, out, "a much longer name")
}

func TestTablify_Idempotent(t *testing.T) {
	data := map[string]map[string]any{
		"Defects": {"Opened": 2, "Closed": 1},
		"Tasks":   {"Opened": 1, "Closed": 0},
	}
	opts := TableOptions{ShowHeader: true, ColOrder: []string{"Opened", "Closed"}, Padding: 2}

	assert.Equal(t, Tablify(data, opts), Tablify(data, opts))
}

func TestHeading(t *testing.T) {
	assert.Equal(t, "Ticket Summary\n--------------", Heading("Ticket Summary"))
}
