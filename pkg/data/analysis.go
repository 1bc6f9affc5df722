package data

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/torplabs/torp/pkg/scoring"
)

const (
	insertAnalysisSQL = `INSERT INTO analysis (
			id,
			analyzed_at,
			contractor,
			score,
			score_100,
			raw_grade,
			final_grade,
			consistency,
			imbalance,
			capped,
			flags,
			document
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectAnalysisSQL = `SELECT document FROM analysis WHERE id = ?`

	listAnalysesSQL = `SELECT
			id,
			analyzed_at,
			contractor,
			score,
			final_grade,
			consistency,
			imbalance,
			capped
		FROM analysis
		WHERE final_grade = COALESCE(?, final_grade)
		AND contractor LIKE ?
		ORDER BY analyzed_at DESC
		LIMIT ?
	`
)

// AnalysisListItem is the summary row returned by ListAnalyses. The full
// document is only materialized by GetAnalysis.
type AnalysisListItem struct {
	ID          string        `json:"id" yaml:"id"`
	AnalyzedAt  time.Time     `json:"analyzed_at" yaml:"analyzedAt"`
	Contractor  string        `json:"contractor,omitempty" yaml:"contractor,omitempty"`
	Score       int           `json:"score" yaml:"score"`
	FinalGrade  scoring.Grade `json:"final_grade" yaml:"finalGrade"`
	Consistency int           `json:"consistency" yaml:"consistency"`
	Imbalance   bool          `json:"imbalance" yaml:"imbalance"`
	Capped      bool          `json:"capped" yaml:"capped"`
}

// AnalysisQuery narrows ListAnalyses results. Zero values mean no filter.
type AnalysisQuery struct {
	Grade      string `json:"grade,omitempty" yaml:"grade,omitempty"`
	Contractor string `json:"contractor,omitempty" yaml:"contractor,omitempty"`
	Limit      int    `json:"limit,omitempty" yaml:"limit,omitempty"`
}

const defaultListLimit = 100

// SaveAnalysis persists a completed analysis. Records are insert-only, a
// re-analysis of the same quote gets a new id.
func SaveAnalysis(db *sql.DB, r *scoring.AnalysisResult) error {
	if db == nil {
		return errDBNotInitialized
	}
	if r == nil {
		return errors.New("analysis result required")
	}

	doc, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis %s: %w", r.ID, err)
	}

	// nil flags must land as an empty JSON array, json_each chokes on null
	fl := r.Consistency.Flags
	if fl == nil {
		fl = []string{}
	}
	flags, err := json.Marshal(fl)
	if err != nil {
		return fmt.Errorf("failed to serialize flags for %s: %w", r.ID, err)
	}

	stmt, err := db.Prepare(insertAnalysisSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare analysis insert statement: %w", err)
	}

	if _, err = stmt.Exec(
		r.ID,
		r.CreatedAt.UTC().Format(time.RFC3339),
		r.Input.Enterprise.LegalID,
		r.Composite.Score,
		r.Composite.Score100,
		r.Composite.RawGrade.String(),
		r.Composite.FinalGrade.String(),
		r.Consistency.Score,
		r.Consistency.Imbalance,
		len(r.Composite.CappingReasons) > 0,
		string(flags),
		string(doc),
	); err != nil {
		return fmt.Errorf("failed to insert analysis %s: %w", r.ID, err)
	}

	return nil
}

// GetAnalysis returns the full stored document, or nil when the id is unknown.
func GetAnalysis(db *sql.DB, id string) (*scoring.AnalysisResult, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}
	if id == "" {
		return nil, errors.New("analysis id required")
	}

	stmt, err := db.Prepare(selectAnalysisSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare analysis select statement: %w", err)
	}

	var doc string
	if err := stmt.QueryRow(id).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan analysis row: %w", err)
	}

	var r scoring.AnalysisResult
	if err := json.Unmarshal([]byte(doc), &r); err != nil {
		return nil, fmt.Errorf("failed to parse stored analysis %s: %w", id, err)
	}

	return &r, nil
}

// ListAnalyses returns summary rows, newest first.
func ListAnalyses(db *sql.DB, q AnalysisQuery) ([]*AnalysisListItem, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	var grade any
	if q.Grade != "" {
		g, err := scoring.ParseGrade(q.Grade)
		if err != nil {
			return nil, err
		}
		grade = g.String()
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	stmt, err := db.Prepare(listAnalysesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare analysis list statement: %w", err)
	}

	rows, err := stmt.Query(grade, "%"+q.Contractor+"%", limit)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to execute analysis list statement: %w", err)
	}
	defer rows.Close()

	list := make([]*AnalysisListItem, 0)
	for rows.Next() {
		var (
			item AnalysisListItem
			at   string
			g    string
		)
		if err := rows.Scan(&item.ID, &at, &item.Contractor, &item.Score,
			&g, &item.Consistency, &item.Imbalance, &item.Capped); err != nil {
			return nil, fmt.Errorf("failed to scan analysis list row: %w", err)
		}
		if item.AnalyzedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("failed to parse analyzed_at for %s: %w", item.ID, err)
		}
		if item.FinalGrade, err = scoring.ParseGrade(g); err != nil {
			return nil, fmt.Errorf("failed to parse grade for %s: %w", item.ID, err)
		}
		list = append(list, &item)
	}

	return list, nil
}
