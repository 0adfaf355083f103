package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// CSVExtractor handles CSV files. Each data row is rendered as
// "header: value" pairs; rows are grouped into paragraphs so very wide files
// still chunk sensibly.
type CSVExtractor struct{}

const csvRowsPerParagraph = 20

func (e *CSVExtractor) Extract(r io.Reader, filename string) (string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return "", nil
	}

	headers := records[0]
	rows := records[1:]

	var paragraphs []string
	for start := 0; start < len(rows); start += csvRowsPerParagraph {
		end := start + csvRowsPerParagraph
		if end > len(rows) {
			end = len(rows)
		}

		var b strings.Builder
		for _, row := range rows[start:end] {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			for j, cell := range row {
				if j > 0 {
					b.WriteString(", ")
				}
				if j < len(headers) {
					b.WriteString(headers[j])
					b.WriteString(": ")
				}
				b.WriteString(cell)
			}
		}
		paragraphs = append(paragraphs, b.String())
	}

	if len(paragraphs) == 0 {
		// Header-only file: keep the headers as the document text.
		paragraphs = append(paragraphs, strings.Join(headers, ", "))
	}

	return joinParagraphs(paragraphs), nil
}
