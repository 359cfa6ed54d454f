package server

import (
	"net/http"
	"strings"

	"github.com/mfletcher/nestegg/internal/common"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/config", s.handleConfig)

	// Portfolio
	mux.HandleFunc("/api/portfolio/", s.routePortfolio)
	mux.HandleFunc("/api/portfolio", s.handlePortfolio)

	// Settings
	mux.HandleFunc("/api/settings", s.handleSettings)

	// Currency
	mux.HandleFunc("/api/convert", s.handleConvert)
}

// routePortfolio dispatches /api/portfolio/{subpath} to the appropriate handler.
func (s *Server) routePortfolio(w http.ResponseWriter, r *http.Request) {
	subpath := strings.TrimPrefix(r.URL.Path, "/api/portfolio/")

	switch subpath {
	case "":
		s.handlePortfolio(w, r)
	case "allocations":
		s.handleAllocations(w, r)
	case "checkup":
		s.handleCheckup(w, r)
	case "fi":
		s.handleFIProgress(w, r)
	case "history":
		s.handleHistory(w, r)
	case "snapshot":
		s.handleSnapshot(w, r)
	case "export":
		s.handleExport(w, r)
	case "import":
		s.handleImport(w, r)
	default:
		WriteError(w, http.StatusNotFound, "Not found")
	}
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":      cfg.Environment,
		"base_currency":    cfg.Currency.Base,
		"currencies":       supportedCurrencies(cfg),
		"fi_target":        cfg.FI.Target,
		"withdrawal_rate":  cfg.FI.WithdrawalRate,
		"growth_rate":      cfg.FI.GrowthRate,
		"thresholds":       cfg.Thresholds,
		"bucket_targets":   cfg.Buckets,
		"storage_path":     cfg.Storage.Path,
		"logging_level":    cfg.Logging.Level,
	})
}

func supportedCurrencies(cfg *common.Config) []string {
	codes := make([]string, 0, len(cfg.Currency.Rates)+1)
	codes = append(codes, cfg.Currency.Base)
	for code := range cfg.Currency.Rates {
		codes = append(codes, code)
	}
	return codes
}
