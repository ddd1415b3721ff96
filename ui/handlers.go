package ui

import (
	"encoding/json"
	"net/http"
	"strconv"

	"coinlab/internal/analysis"
	"coinlab/internal/errors"
	"coinlab/ports"
)

type indexData struct {
	MaxFlips           int
	DefaultFlips       int
	DefaultProbability float64
	Results            *resultsData
}

type resultsData struct {
	Snapshot *ports.SessionSnapshot
	Profile  analysis.Profile
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)

	data := indexData{
		MaxFlips:           a.sim.MaxFlips,
		DefaultFlips:       a.sim.DefaultFlips,
		DefaultProbability: a.sim.DefaultProbability,
	}

	snapshot, err := a.service.Last(r.Context(), session)
	if err != nil {
		a.logger.Warn("load snapshot: %v", err)
	} else if snapshot != nil {
		data.Results = &resultsData{
			Snapshot: snapshot,
			Profile:  analysis.ProfileSequence(snapshot.Trials),
		}
	}

	a.renderTemplate(w, "index.html", data)
}

func (a *App) handleFlip(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)

	if err := r.ParseForm(); err != nil {
		a.renderError(w, http.StatusBadRequest, "could not read form values")
		return
	}

	count, err := strconv.Atoi(r.FormValue("count"))
	if err != nil {
		a.renderError(w, http.StatusBadRequest, "flip count must be a whole number")
		return
	}
	probability, err := strconv.ParseFloat(r.FormValue("probability"), 64)
	if err != nil {
		a.renderError(w, http.StatusBadRequest, "heads probability must be a number")
		return
	}

	result, err := a.service.Flip(r.Context(), session, count, probability)
	if err != nil {
		a.renderError(w, statusForError(err), err.Error())
		return
	}

	snapshot, err := a.service.Last(r.Context(), session)
	if err != nil || snapshot == nil {
		a.renderError(w, http.StatusInternalServerError, "results were not stored")
		return
	}

	a.renderTemplate(w, "results.html", &resultsData{
		Snapshot: snapshot,
		Profile:  result.Profile,
	})
}

func (a *App) handleClear(w http.ResponseWriter, r *http.Request) {
	session := sessionID(w, r)

	if err := a.service.Clear(r.Context(), session); err != nil {
		a.renderError(w, statusForError(err), err.Error())
		return
	}

	if isHTMX(r) {
		a.renderTemplate(w, "empty.html", nil)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (a *App) handleChartFrequency(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := a.requireSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, analysis.FrequencyData(snapshot.Summary))
}

func (a *App) handleChartCumulative(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := a.requireSnapshot(w, r)
	if !ok {
		return
	}
	writeJSON(w, analysis.CumulativeSeries(snapshot.Trials))
}

func (a *App) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := a.requireSnapshot(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="coin_flips.csv"`)
	if err := a.exportCSV(w, snapshot); err != nil {
		a.logger.Error("csv export: %v", err)
	}
}

func (a *App) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := a.requireSnapshot(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="coin_flips.xlsx"`)
	if err := a.exportXLSX(w, snapshot); err != nil {
		a.logger.Error("xlsx export: %v", err)
	}
}

// requireSnapshot loads the current session snapshot, writing a 404 when no
// simulation has run yet.
func (a *App) requireSnapshot(w http.ResponseWriter, r *http.Request) (*ports.SessionSnapshot, bool) {
	session := sessionID(w, r)

	snapshot, err := a.service.Last(r.Context(), session)
	if err != nil {
		http.Error(w, err.Error(), statusForError(err))
		return nil, false
	}
	if snapshot == nil || snapshot.Summary.Total == 0 {
		http.Error(w, "no results yet; flip the coin first", http.StatusNotFound)
		return nil, false
	}
	return snapshot, true
}

func (a *App) renderError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	a.renderTemplate(w, "error.html", map[string]string{"Message": message})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// statusForError maps engine error codes to HTTP statuses
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeInvalidParameter:
		return http.StatusBadRequest
	case errors.CodeUndefinedTest:
		return http.StatusConflict
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
