// Package docparse extracts income fields out of free-form document text
// using line-prefix heuristics. It knows nothing about HTTP or storage.
package docparse

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Labels the source documents print in front of the fields of interest,
// and the marker identifying subtotal/total lines.
const (
	AmountLabel  = "סכום:"
	ClientLabel  = "לקוח:"
	TotalsMarker = `סה"כ`
)

// Extraction is the result of scanning document text for income fields.
type Extraction struct {
	Amount     float64
	ClientName string
}

// ExtractText pulls the plain text out of a PDF in source line order.
// The pdf reader can panic on malformed input, so the call is guarded.
func ExtractText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during PDF text extraction: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open PDF reader: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract plain text: %w", err)
	}

	raw, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("read plain text: %w", err)
	}
	return string(raw), nil
}

// SplitLines breaks text into trimmed, non-empty lines.
func SplitLines(text string) []string {
	lines := make([]string, 0)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// Extract scans every line and keeps the last amount and client name seen.
// A missing or unparseable amount yields zero; a missing client label
// yields an empty name.
func Extract(lines []string) Extraction {
	var amountRaw, clientName string
	for _, line := range lines {
		if strings.HasPrefix(line, AmountLabel) {
			amountRaw = strings.TrimSpace(strings.TrimPrefix(line, AmountLabel))
		}
		if strings.HasPrefix(line, ClientLabel) {
			clientName = strings.TrimSpace(strings.TrimPrefix(line, ClientLabel))
		}
	}

	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil {
		amount = 0
	}
	return Extraction{Amount: amount, ClientName: clientName}
}

// TotalLines returns every line containing the subtotal/total marker.
func TotalLines(lines []string) []string {
	totals := make([]string, 0)
	for _, line := range lines {
		if strings.Contains(line, TotalsMarker) {
			totals = append(totals, line)
		}
	}
	return totals
}
