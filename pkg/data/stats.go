package data

import (
	"database/sql"
	"errors"
	"fmt"
)

const (
	selectGradeDistributionSQL = `SELECT
			final_grade,
			COUNT(*) as total
		FROM analysis
		GROUP BY final_grade
	`

	selectFlagCountsSQL = `SELECT
			j.value as flag,
			COUNT(*) as total
		FROM analysis a, json_each(a.flags) j
		GROUP BY j.value
		ORDER BY 2 DESC
	`

	selectSummarySQL = `SELECT
			COUNT(*) as total,
			COALESCE(AVG(score), 0) as avg_score,
			COALESCE(SUM(capped), 0) as capped,
			COALESCE(SUM(imbalance), 0) as imbalanced
		FROM analysis
	`
)

type StatsSummary struct {
	Analyses     int64   `json:"analyses" yaml:"analyses"`
	AverageScore float64 `json:"avg_score" yaml:"avgScore"`
	Capped       int64   `json:"capped" yaml:"capped"`
	Imbalanced   int64   `json:"imbalanced" yaml:"imbalanced"`
}

// GetGradeDistribution counts stored analyses by final grade.
func GetGradeDistribution(db *sql.DB) (map[string]int64, error) {
	return getCountMap(db, selectGradeDistributionSQL)
}

// GetFlagCounts counts structural-consistency flags across all stored
// analyses.
func GetFlagCounts(db *sql.DB) (map[string]int64, error) {
	return getCountMap(db, selectFlagCountsSQL)
}

func getCountMap(db *sql.DB, sqlQuery string) (map[string]int64, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	stmt, err := db.Prepare(sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare count statement: %w", err)
	}

	rows, err := stmt.Query()
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to execute count statement: %w", err)
	}
	defer rows.Close()

	m := make(map[string]int64)
	for rows.Next() {
		var (
			key string
			n   int64
		)
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		m[key] = n
	}

	return m, nil
}

// GetSummary returns aggregate counters across all stored analyses.
func GetSummary(db *sql.DB) (*StatsSummary, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	stmt, err := db.Prepare(selectSummarySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare summary statement: %w", err)
	}

	var s StatsSummary
	if err := stmt.QueryRow().Scan(&s.Analyses, &s.AverageScore,
		&s.Capped, &s.Imbalanced); err != nil {
		return nil, fmt.Errorf("failed to scan summary row: %w", err)
	}

	return &s, nil
}
