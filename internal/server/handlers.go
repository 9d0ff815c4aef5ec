package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/models"
	"github.com/bobmcallan/advisor/internal/storage"
)

// PortfolioRequest is the upload payload for POST /api/portfolio.
type PortfolioRequest struct {
	Assets []models.Asset `json:"assets" validate:"required,min=1,dive"`
}

// AnalyzeRequest is the payload for POST /api/analyze. Goals are optional;
// the default goal set is analyzed when omitted.
type AnalyzeRequest struct {
	Goals []string `json:"goals"`
}

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

// handlePortfolio serves POST (upload), GET (current) and DELETE (clear) on
// /api/portfolio.
func (s *Server) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handlePortfolioUpload(w, r)
	case http.MethodGet:
		s.handlePortfolioGet(w, r)
	case http.MethodDelete:
		s.handlePortfolioClear(w, r)
	default:
		RequireMethod(w, r, http.MethodPost, http.MethodGet, http.MethodDelete)
	}
}

func (s *Server) handlePortfolioUpload(w http.ResponseWriter, r *http.Request) {
	var req PortfolioRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := s.validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid portfolio: "+err.Error())
		return
	}

	portfolio := models.Portfolio{Assets: req.Assets}
	if err := s.store.Save(r.Context(), &portfolio); err != nil {
		s.logger.Error().Err(err).Msg("Failed to save portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to save portfolio")
		return
	}

	WriteJSON(w, http.StatusOK, portfolio)
}

func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request) {
	portfolio, err := s.store.Load(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNoPortfolio) {
			WriteError(w, http.StatusNotFound, "No portfolio uploaded")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to load portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to load portfolio")
		return
	}
	WriteJSON(w, http.StatusOK, portfolio)
}

func (s *Server) handlePortfolioClear(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.logger.Error().Err(err).Msg("Failed to clear portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to clear portfolio")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// handleAnalyze runs the full analysis pipeline over the stored portfolio.
// The result is always 200 with the run's outcome; a short-circuited run
// reports its failure in the result's error field, not the HTTP status.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req AnalyzeRequest
	if r.ContentLength > 0 && !DecodeJSON(w, r, &req) {
		return
	}

	portfolio, err := s.store.Load(r.Context())
	if err != nil {
		if errors.Is(err, storage.ErrNoPortfolio) {
			WriteError(w, http.StatusNotFound, "No portfolio uploaded")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to load portfolio")
		WriteError(w, http.StatusInternalServerError, "Failed to load portfolio")
		return
	}

	result := s.pipeline.Run(r.Context(), *portfolio, req.Goals)
	WriteJSON(w, http.StatusOK, result)
}
