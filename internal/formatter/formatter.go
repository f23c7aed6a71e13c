// package formatter provides functions to export tag analysis results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/desertthunder/ytag/internal/models"
	"github.com/desertthunder/ytag/internal/shared"
)

// ExportToCSV converts an AnalysisResult to CSV format with columns: Rank, Tag, Count
func ExportToCSV(result *models.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Rank", "Tag", "Count"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, tc := range result.Tags {
		record := []string{
			strconv.Itoa(i + 1),
			tc.Tag,
			strconv.Itoa(tc.Count),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an AnalysisResult to a Markdown document with a ranked tag table
func ExportToMarkdown(result *models.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Channel Tag Analysis\n\n")
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n", len(result.Videos)))
	buf.WriteString(fmt.Sprintf("**Unique tags**: %d\n\n", len(result.Tags)))

	buf.WriteString("| Rank | Tag | Count |\n")
	buf.WriteString("| ---: | --- | ---: |\n")
	for i, tc := range result.Tags {
		buf.WriteString(fmt.Sprintf("| %d | %s | %d |\n", i+1, tc.Tag, tc.Count))
	}

	return buf.Bytes(), nil
}

// ExportToText converts an AnalysisResult to plain text format
func ExportToText(result *models.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Videos: %d\n", len(result.Videos)))
	buf.WriteString(fmt.Sprintf("Unique tags: %d\n\n", len(result.Tags)))

	for i, tc := range result.Tags {
		buf.WriteString(fmt.Sprintf("%d. %s (%d)\n", i+1, tc.Tag, tc.Count))
	}

	return buf.Bytes(), nil
}

// ToResultJSON generates a JSON representation of the full analysis result
func ToResultJSON(result *models.AnalysisResult) ([]byte, error) {
	return shared.MarshalJSON(result, true)
}

// WriteCSVExport writes the tag table to a CSV file.
//
// Defaults to tags.csv when no path is given.
func WriteCSVExport(result *models.AnalysisResult, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tags.csv"
	}

	csvData, err := ExportToCSV(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteMarkdownExport writes the tag table to a Markdown file.
//
// Defaults to tags.md when no path is given.
func WriteMarkdownExport(result *models.AnalysisResult, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tags.md"
	}

	mdData, err := ExportToMarkdown(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport writes the tag table to a plain text file.
//
// Defaults to tags.txt when no path is given.
func WriteTextExport(result *models.AnalysisResult, filepath string) (string, error) {
	if filepath == "" {
		filepath = "tags.txt"
	}

	textData, err := ExportToText(result)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
