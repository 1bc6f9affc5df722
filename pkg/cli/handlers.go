package cli

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/torplabs/torp/pkg/data"
	"github.com/torplabs/torp/pkg/scenario"
	"github.com/torplabs/torp/pkg/scoring"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	requestErrors.WithLabelValues(r.URL.Path).Inc()
	writeJSON(w, status, map[string]string{"error": msg})
}

func analyzeAPIHandler(e *scoring.Engine, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in scoring.ScoringInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := e.Analyze(in)
		if err != nil {
			var verr *scoring.ValidationError
			if errors.As(err, &verr) {
				writeError(w, r, http.StatusBadRequest, verr.Error())
				return
			}
			slog.Error("analysis failed", "error", err)
			writeError(w, r, http.StatusInternalServerError, "analysis failed")
			return
		}

		if r.URL.Query().Get("save") == "true" {
			if err := data.SaveAnalysis(db, res); err != nil {
				slog.Error("failed to save analysis", "error", err, "id", res.ID)
				writeError(w, r, http.StatusInternalServerError, "failed to save analysis")
				return
			}
		}

		analysesTotal.WithLabelValues(res.Composite.FinalGrade.String()).Inc()
		analysisScore.Observe(float64(res.Composite.Score))
		if len(res.Composite.CappingReasons) > 0 {
			analysesCapped.Inc()
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func analysesAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := data.ListAnalyses(db, data.AnalysisQuery{
			Grade:      r.URL.Query().Get("grade"),
			Contractor: r.URL.Query().Get("contractor"),
		})
		if err != nil {
			slog.Error("failed to list analyses", "error", err)
			writeError(w, r, http.StatusInternalServerError, "failed to list analyses")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func analysisAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		res, err := data.GetAnalysis(db, id)
		if err != nil {
			slog.Error("failed to get analysis", "error", err, "id", id)
			writeError(w, r, http.StatusInternalServerError, "failed to get analysis")
			return
		}
		if res == nil {
			writeError(w, r, http.StatusNotFound, "analysis not found")
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func gradeStatsAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dist, err := data.GetGradeDistribution(db)
		if err != nil {
			slog.Error("failed to get grade distribution", "error", err)
			writeError(w, r, http.StatusInternalServerError, "failed to get grade distribution")
			return
		}
		writeJSON(w, http.StatusOK, dist)
	}
}

func flagStatsAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := data.GetFlagCounts(db)
		if err != nil {
			slog.Error("failed to get flag counts", "error", err)
			writeError(w, r, http.StatusInternalServerError, "failed to get flag counts")
			return
		}
		writeJSON(w, http.StatusOK, counts)
	}
}

func summaryAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := data.GetSummary(db)
		if err != nil {
			slog.Error("failed to get summary", "error", err)
			writeError(w, r, http.StatusInternalServerError, "failed to get summary")
			return
		}
		writeJSON(w, http.StatusOK, s)
	}
}

func scenariosAPIHandler(e *scoring.Engine, workers int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := scenario.RunAll(r.Context(), e, workers)
		if err != nil {
			slog.Error("failed to run scenarios", "error", err)
			writeError(w, r, http.StatusInternalServerError, "failed to run scenarios")
			return
		}
		writeJSON(w, http.StatusOK, results)
	}
}

func healthAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version})
	}
}
