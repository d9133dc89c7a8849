package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParsedFile holds the decoded rows of one uploaded file. Rows carry a
// "_row" key with the original 1-indexed line number for error reporting.
type ParsedFile struct {
	Headers []string
	Rows    []map[string]string
}

// parseCSV parses CSV content into rows keyed by header
func parseCSV(content []byte) (*ParsedFile, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	parsed := &ParsedFile{Headers: headers}
	lineNum := 1

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading line %d: %w", lineNum+1, err)
		}

		row := make(map[string]string)
		for i, value := range record {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(lineNum + 1) // Track row number for error reporting
		parsed.Rows = append(parsed.Rows, row)
		lineNum++
	}

	return parsed, nil
}

// parseXLSX parses the first sheet of an Excel file into rows keyed by header
func parseXLSX(content []byte) (*ParsedFile, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	excelRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(excelRows) == 0 {
		return nil, fmt.Errorf("sheet is empty")
	}

	headers := excelRows[0]
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	parsed := &ParsedFile{Headers: headers}
	for rowIdx, excelRow := range excelRows[1:] {
		row := make(map[string]string)
		for i, value := range excelRow {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		row["_row"] = strconv.Itoa(rowIdx + 2) // 1-indexed, +1 for header
		parsed.Rows = append(parsed.Rows, row)
	}

	return parsed, nil
}

// ParseUpload decodes an uploaded file as XLSX when the filename says so,
// CSV otherwise.
func ParseUpload(content []byte, filename string) (*ParsedFile, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return parseXLSX(content)
	}
	return parseCSV(content)
}
