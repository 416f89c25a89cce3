package api

import (
	"encoding/json"
	"net/http"
	"strings"
)

type assembleRequest struct {
	Department string `json:"department"`
	Role       string `json:"role"`
}

// handleAssemble builds the context record for a (department, role) pair.
func (s *Server) handleAssemble(w http.ResponseWriter, r *http.Request) {
	var req assembleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Department) == "" {
		jsonError(w, "department is required", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Role) == "" {
		jsonError(w, "role is required", http.StatusBadRequest)
		return
	}

	ac, err := s.assembler.Assemble(req.Department, req.Role)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ac)
}

// handleListUnits returns the flat unit listing for search/autocomplete,
// optionally filtered by a case-insensitive name query.
func (s *Server) handleListUnits(w http.ResponseWriter, r *http.Request) {
	units, err := s.assembler.Units()
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	if q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q"))); q != "" {
		filtered := units[:0]
		for _, u := range units {
			if strings.Contains(strings.ToLower(u.DisplayName), q) ||
				strings.Contains(strings.ToLower(u.FullPath), q) {
				filtered = append(filtered, u)
			}
		}
		units = filtered
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"count": len(units),
		"units": units,
	})
}

// handleTree returns the full structure with the target unit and its
// ancestors highlighted.
func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Query().Get("target")
	tree, err := s.assembler.HighlightTree(target)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tree)
}

// handleCoverage runs the metric-resolution coverage probe over every
// indexed unit.
func (s *Server) handleCoverage(w http.ResponseWriter, r *http.Request) {
	probe, err := s.assembler.Coverage(r.Context(), s.cfg.CoverageWorkers)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(probe)
}

// handleStats returns the rolling assembly statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.assembler.Stats())
}

// handleReload rebuilds the index and invalidates memoized documents.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.assembler.Reload(); err != nil {
		jsonError(w, "reload failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"reloaded"}`))
}
