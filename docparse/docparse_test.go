package docparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		wantAmount float64
		wantClient string
	}{
		{
			name:       "amount and client present",
			lines:      []string{"חשבונית מס", "סכום: 100", "לקוח: ישראל"},
			wantAmount: 100,
			wantClient: "ישראל",
		},
		{
			name:       "last match wins",
			lines:      []string{"סכום: 50", "לקוח: אברהם", "סכום: 250.5", "לקוח: שרה"},
			wantAmount: 250.5,
			wantClient: "שרה",
		},
		{
			name:       "no labels at all",
			lines:      []string{"some header", "a line of text", "another line"},
			wantAmount: 0,
			wantClient: "",
		},
		{
			name:       "unparseable amount defaults to zero",
			lines:      []string{"סכום: forty two", "לקוח: ישראל"},
			wantAmount: 0,
			wantClient: "ישראל",
		},
		{
			name:       "label mid-line is not a prefix",
			lines:      []string{"ה-סכום: 77", "לקוח: דוד"},
			wantAmount: 0,
			wantClient: "דוד",
		},
		{
			name:       "empty input",
			lines:      nil,
			wantAmount: 0,
			wantClient: "",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Extract(tc.lines)
			assert.Equal(t, tc.wantAmount, got.Amount)
			assert.Equal(t, tc.wantClient, got.ClientName)
		})
	}
}

func TestSplitLines(t *testing.T) {
	text := "  first \n\n\tsecond line\n   \nthird\n"
	assert.Equal(t, []string{"first", "second line", "third"}, SplitLines(text))
}

func TestSplitLinesEmpty(t *testing.T) {
	assert.Empty(t, SplitLines(""))
	assert.Empty(t, SplitLines("\n \n\t\n"))
}

func TestTotalLines(t *testing.T) {
	lines := []string{
		`סה"כ לתשלום: 117`,
		"סכום: 100",
		`מע"מ: 17`,
		`סה"כ כולל מע"מ: 117`,
	}
	totals := TotalLines(lines)
	assert.Equal(t, []string{`סה"כ לתשלום: 117`, `סה"כ כולל מע"מ: 117`}, totals)
}

func TestTotalLinesNoMarker(t *testing.T) {
	assert.Empty(t, TotalLines([]string{"סכום: 100", "לקוח: ישראל"}))
}

func TestExtractTextRejectsNonPDF(t *testing.T) {
	_, err := ExtractText([]byte("this is not a pdf"))
	assert.Error(t, err)
}
