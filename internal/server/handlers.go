package server

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/mfletcher/nestegg/internal/models"
	"github.com/mfletcher/nestegg/internal/services/calc"
)

// writeDomainError maps the error taxonomy onto HTTP responses. Validation
// and range failures are client errors; anything else is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "invalid_input")
	case errors.Is(err, models.ErrOutOfRange):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "out_of_range")
	case errors.Is(err, models.ErrMissingField):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "missing_field")
	case errors.Is(err, models.ErrUnsupportedCurrency):
		WriteErrorWithCode(w, http.StatusBadRequest, err.Error(), "unsupported_currency")
	default:
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// handlePortfolio handles GET and PUT /api/portfolio. PUT replaces the
// record wholesale after validation; there is no partial patch. With
// ?deferred=true the write is debounced so rapid edits coalesce into one
// commit; the edit is validated up front either way.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		p, err := s.app.Dashboard.GetPortfolio(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, p)

	case http.MethodPut:
		var p models.Portfolio
		if !DecodeJSON(w, r, &p) {
			return
		}
		if r.URL.Query().Get("deferred") == "true" {
			if err := p.Validate(); err != nil {
				writeDomainError(w, err)
				return
			}
			s.app.Dashboard.QueueSave(&p)
			WriteJSON(w, http.StatusAccepted, &p)
			return
		}
		if err := s.app.Dashboard.SavePortfolio(r.Context(), &p); err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, &p)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handleAllocations(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	p, err := s.app.Dashboard.GetPortfolio(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	total, err := calc.Total(p)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	allocs, err := calc.Allocations(p)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"total":       total,
		"allocations": allocs,
	})
}

func (s *Server) handleCheckup(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.Dashboard.Snapshot(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	issues := snapshot.Issues
	if issues == nil {
		issues = []models.HealthIssue{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"healthy": len(issues) == 0,
		"issues":  issues,
	})
}

func (s *Server) handleFIProgress(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.Dashboard.Snapshot(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, snapshot.FI)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.Dashboard.Snapshot(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"metrics": snapshot.History,
		"series":  s.app.Dashboard.History(),
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	snapshot, err := s.app.Dashboard.Snapshot(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	data, err := s.app.Dashboard.Export(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="nestegg-export.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	bundle, err := s.app.Dashboard.Import(r.Context(), data)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imported_portfolio": bundle.Portfolio != nil,
		"imported_settings":  bundle.Settings != nil,
		"source_version":     bundle.Version,
	})
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := s.app.Dashboard.GetSettings(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, settings)

	case http.MethodPut:
		var settings models.Settings
		if !DecodeJSON(w, r, &settings) {
			return
		}
		if err := s.app.Dashboard.SaveSettings(r.Context(), &settings); err != nil {
			writeDomainError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, &settings)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut)
	}
}

// handleConvert handles GET /api/convert?amount=&to=. The response carries
// the converted, already-rounded value plus its display rendering; clients
// must not re-round it.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	amountParam := r.URL.Query().Get("amount")
	target := r.URL.Query().Get("to")
	if amountParam == "" || target == "" {
		WriteError(w, http.StatusBadRequest, "amount and to parameters are required")
		return
	}

	amount, err := strconv.ParseFloat(amountParam, 64)
	if err != nil {
		WriteErrorWithCode(w, http.StatusBadRequest, "amount is not a number", "invalid_input")
		return
	}

	converted, err := s.app.Converter.Convert(amount, target)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"amount":    amount,
		"base":      s.app.Converter.Base(),
		"currency":  target,
		"converted": converted,
		"display":   s.app.Converter.Format(converted, target),
	})
}
