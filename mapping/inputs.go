package mapping

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

var (
	// ErrNegativeIndex is returned when an inputs document names a line index below zero.
	ErrNegativeIndex = errors.New("negative line index")
	// ErrInvalidScore is returned for NaN or infinite scores.
	ErrInvalidScore = errors.New("score is not a finite number")
)

// ScoreEntry is one row of a score table in an inputs document.
type ScoreEntry struct {
	Left  int     `json:"left"`
	Right int     `json:"right"`
	Score float64 `json:"score"`
}

// InputsDocument is the JSON form of Inputs. Shortlist keys are left
// indices written as strings, as JSON object keys must be.
type InputsDocument struct {
	Content    []ScoreEntry     `json:"content"`
	Simhash    []ScoreEntry     `json:"simhash"`
	Shortlists map[string][]int `json:"shortlists"`
}

// DecodeInputs reads and validates an inputs document. When a table lists
// the same pair twice the last entry wins.
func DecodeInputs(r io.Reader) (*Inputs, error) {
	var doc InputsDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode inputs: %w", err)
	}
	return doc.Inputs()
}

// Inputs validates the document and converts it to engine inputs.
func (d *InputsDocument) Inputs() (*Inputs, error) {
	content, err := buildTable("content", d.Content)
	if err != nil {
		return nil, err
	}
	simhash, err := buildTable("simhash", d.Simhash)
	if err != nil {
		return nil, err
	}

	shortlists := make(Shortlists, len(d.Shortlists))
	for key, candidates := range d.Shortlists {
		left, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("shortlists: key %q is not a line index: %w", key, err)
		}
		if left < 0 {
			return nil, fmt.Errorf("shortlists: left %d: %w", left, ErrNegativeIndex)
		}
		for _, right := range candidates {
			if right < 0 {
				return nil, fmt.Errorf("shortlists: left %d candidate %d: %w", left, right, ErrNegativeIndex)
			}
		}
		shortlists[left] = append([]int(nil), candidates...)
	}

	return &Inputs{Content: content, Simhash: simhash, Shortlists: shortlists}, nil
}

func buildTable(name string, entries []ScoreEntry) (ScoreTable, error) {
	table := make(ScoreTable, len(entries))
	for i, e := range entries {
		if e.Left < 0 || e.Right < 0 {
			return nil, fmt.Errorf("%s[%d] (%d,%d): %w", name, i, e.Left, e.Right, ErrNegativeIndex)
		}
		if math.IsNaN(e.Score) || math.IsInf(e.Score, 0) {
			return nil, fmt.Errorf("%s[%d] (%d,%d): %w", name, i, e.Left, e.Right, ErrInvalidScore)
		}
		table[Pair{Left: e.Left, Right: e.Right}] = e.Score
	}
	return table, nil
}
