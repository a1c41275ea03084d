package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	gptext "github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"linealign/mapping"
	"linealign/text"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

const (
	statusMatched        = "matched"
	statusBelowThreshold = "below threshold"
	statusNoCandidates   = "no candidates"
	statusConflict       = "conflict"
)

type alignedPair struct {
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	LeftLine  int     `json:"left_line"`
	RightLine int     `json:"right_line"`
	Score     float64 `json:"score"`
	Change    string  `json:"change"`
}

type unmatchedLine struct {
	Left     int      `json:"left"`
	LeftLine int      `json:"left_line"`
	Reason   string   `json:"reason"`
	Best     *int     `json:"best_right,omitempty"`
	Score    *float64 `json:"score,omitempty"`
}

type alignReport struct {
	Mapping   []alignedPair   `json:"mapping"`
	Unmatched []unmatchedLine `json:"unmatched"`

	leftText []string
}

// buildReport lists every evaluated left line in left-index order.
func buildReport(result *mapping.Result, left, right []text.Line) alignReport {
	report := alignReport{
		Mapping:   []alignedPair{},
		Unmatched: []unmatchedLine{},
		leftText:  text.Texts(left),
	}

	for _, claim := range result.Claims {
		if r, ok := result.Mapping[claim.Left]; ok {
			report.Mapping = append(report.Mapping, alignedPair{
				Left:      claim.Left,
				Right:     r,
				LeftLine:  left[claim.Left].Number,
				RightLine: right[r].Number,
				Score:     claim.Best.Score,
				Change:    text.ClassifyChange(left[claim.Left].Text, right[r].Text).Type.String(),
			})
			continue
		}

		u := unmatchedLine{
			Left:     claim.Left,
			LeftLine: left[claim.Left].Number,
		}
		switch {
		case claim.Best == nil:
			u.Reason = statusNoCandidates
		case !claim.Accepted:
			u.Reason = statusBelowThreshold
		default:
			u.Reason = statusConflict
		}
		if claim.Best != nil {
			bestLine := right[claim.Best.Right].Number
			score := claim.Best.Score
			u.Best = &bestLine
			u.Score = &score
		}
		report.Unmatched = append(report.Unmatched, u)
	}
	return report
}

func renderReport(report alignReport) string {
	byLeft := make([][]string, len(report.leftText))

	for _, p := range report.Mapping {
		byLeft[p.Left] = []string{
			strconv.Itoa(p.LeftLine), strconv.Itoa(p.RightLine), formatScore(p.Score), statusMatched, p.Change, report.leftText[p.Left],
		}
	}
	for _, u := range report.Unmatched {
		score := "-"
		if u.Score != nil {
			score = formatScore(*u.Score)
		}
		byLeft[u.Left] = []string{
			strconv.Itoa(u.LeftLine), "-", score, u.Reason, "", report.leftText[u.Left],
		}
	}

	rows := make([][]string, 0, len(byLeft))
	for _, cells := range byLeft {
		if cells != nil {
			rows = append(rows, cells)
		}
	}

	return renderTable(
		[]string{"Left", "Right", "Score", "Status", "Change", "Text"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := gptext.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = gptext.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: gptext.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// resolveFormat picks the output format; an empty request means table
// when writing to a terminal and JSON otherwise.
func resolveFormat(requested string, w io.Writer) (string, error) {
	switch requested {
	case formatTable, formatJSON:
		return requested, nil
	case "":
		if isTerminal(w) {
			return formatTable, nil
		}
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want %s or %s)", requested, formatTable, formatJSON)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
