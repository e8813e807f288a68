package content

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// SheetConfig describes where card fields live in a spreadsheet.
type SheetConfig struct {
	SheetName string // empty selects the first sheet
	StartRow  int    // 1-based; rows above it are headers
}

// DefaultSheetConfig reads the first sheet and skips one header row.
func DefaultSheetConfig() SheetConfig {
	return SheetConfig{StartRow: 2}
}

// Sheet column order: prompt, option A..D, correct, type, category,
// difficulty, explanation.
const (
	colPrompt = iota
	colOptionA
	colOptionB
	colOptionC
	colOptionD
	colCorrect
	colType
	colCategory
	colDifficulty
	colExplanation
)

// ImportResult holds the outcome of a sheet import.
type ImportResult struct {
	Cards     []Card
	Processed int
	Skipped   int
	Errors    []string
}

// ReadSheet parses cards from an XLSX workbook. Bad rows are skipped and
// reported in the result rather than failing the whole import.
func ReadSheet(r io.Reader, cfg SheetConfig, now time.Time) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheet, err)
	}

	result := &ImportResult{}
	for i, row := range rows {
		if i < cfg.StartRow-1 {
			continue
		}
		if isBlankRow(row) {
			continue
		}
		result.Processed++

		raw, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		card := Normalize(raw, now.Add(time.Duration(len(result.Cards))*time.Millisecond))
		result.Cards = append(result.Cards, card)
	}
	return result, nil
}

func parseRow(row []string) (Raw, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	prompt := cell(colPrompt)
	if prompt == "" {
		return Raw{}, fmt.Errorf("missing prompt")
	}
	options := []string{cell(colOptionA), cell(colOptionB), cell(colOptionC), cell(colOptionD)}
	for i, o := range options {
		if o == "" {
			return Raw{}, fmt.Errorf("missing option %c", 'A'+i)
		}
	}
	correct, err := parseCorrect(cell(colCorrect))
	if err != nil {
		return Raw{}, err
	}

	return Raw{
		Prompt:       prompt,
		Options:      options,
		CorrectIndex: correct,
		Type:         cell(colType),
		Category:     cell(colCategory),
		Difficulty:   cell(colDifficulty),
		Explanation:  cell(colExplanation),
	}, nil
}

// parseCorrect accepts a letter A-D or a zero-based index 0-3.
func parseCorrect(s string) (int, error) {
	switch strings.ToUpper(s) {
	case "A":
		return 0, nil
	case "B":
		return 1, nil
	case "C":
		return 2, nil
	case "D":
		return 3, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= OptionCount {
		return 0, fmt.Errorf("invalid correct answer %q", s)
	}
	return n, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
