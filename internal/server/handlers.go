package server

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/WinstonAC/winston-global-scraper/internal/export"
	"github.com/WinstonAC/winston-global-scraper/internal/pipeline"
)

// ScrapeKeywordRequest is the body for POST /api/scrapeKeyword.
type ScrapeKeywordRequest struct {
	Keyword string `json:"keyword" validate:"required"`
	Page    int    `json:"page" validate:"omitempty,min=1"`
	Limit   int    `json:"limit" validate:"omitempty,min=1,max=500"`
	Tier    string `json:"tier" validate:"omitempty,oneof=all good excellent"`
}

// BatchScrapeRequest is the body for POST /api/batchScrape.
type BatchScrapeRequest struct {
	Keywords []string `json:"keywords" validate:"required,min=1,max=5,dive,required"`
	Tier     string   `json:"tier" validate:"omitempty,oneof=all good excellent"`
}

// ScrapeRequest is the body for POST /api/scrape.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required"`
}

// handleScrapeKeyword runs a single-keyword scrape.
func (s *Server) handleScrapeKeyword(w http.ResponseWriter, r *http.Request) {
	var req ScrapeKeywordRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.runner.RunKeyword(r.Context(), req.Keyword, pipeline.RunOptions{
		Page:  req.Page,
		Limit: req.Limit,
		Tier:  req.Tier,
	})
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleBatchScrape runs up to five keyword scrapes in one request.
func (s *Server) handleBatchScrape(w http.ResponseWriter, r *http.Request) {
	var req BatchScrapeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.runner.RunBatch(r.Context(), req.Keywords, pipeline.RunOptions{Tier: req.Tier})
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleScrape extracts contacts from one directly-supplied URL.
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req ScrapeRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := s.runner.RunURL(r.Context(), req.URL)
	if err != nil {
		s.pipelineError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleDownload serves a stored CSV artifact as an attachment.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	csvText, ok := s.loadArtifact(w, r)
	if !ok {
		return
	}

	id := r.PathValue("csvId")
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="winston-%s"`, id))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvText))
}

// handleDownloadXLSX serves a stored artifact rendered as an XLSX workbook.
func (s *Server) handleDownloadXLSX(w http.ResponseWriter, r *http.Request) {
	csvText, ok := s.loadArtifact(w, r)
	if !ok {
		return
	}

	data, err := export.XLSXFromCSV(csvText)
	if err != nil {
		log.Printf("[server] XLSX rendering failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate XLSX file")
		return
	}

	id := strings.TrimSuffix(r.PathValue("csvId"), ".csv") + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, id))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// handleSheets returns a stored artifact parsed into rows for spreadsheet
// import, alongside the raw CSV text.
func (s *Server) handleSheets(w http.ResponseWriter, r *http.Request) {
	csvText, ok := s.loadArtifact(w, r)
	if !ok {
		return
	}

	reader := csv.NewReader(strings.NewReader(csvText))
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		log.Printf("[server] artifact CSV parse failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to prepare spreadsheet data")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"success":      true,
		"data":         rows,
		"csvData":      csvText,
		"instructions": "Import the CSV into a new Google Sheet via File > Import",
	})
}

// loadArtifact validates the csvId path parameter and loads the artifact.
// Writes the error response itself when the artifact is unavailable.
func (s *Server) loadArtifact(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("csvId")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "CSV ID is required")
		return "", false
	}

	csvText, err := s.store.Load(r.Context(), id)
	switch {
	case errors.Is(err, export.ErrInvalidID):
		s.errorResponse(w, http.StatusBadRequest, "Invalid CSV ID")
		return "", false
	case errors.Is(err, export.ErrNotFound):
		s.errorResponse(w, http.StatusNotFound, "CSV file not found")
		return "", false
	case err != nil:
		log.Printf("[server] artifact load failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load CSV")
		return "", false
	}
	return csvText, true
}

// decodeAndValidate decodes a JSON body and runs struct validation, writing
// a 400 response on failure.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return false
	}
	return true
}

// pipelineError maps pipeline errors onto HTTP responses. Upstream detail is
// logged, never exposed.
func (s *Server) pipelineError(w http.ResponseWriter, err error) {
	var inputErr *pipeline.InputError
	var timeoutErr *pipeline.TimeoutError
	var unavailErr *pipeline.UnavailableError

	switch {
	case errors.As(err, &inputErr):
		s.errorResponse(w, http.StatusBadRequest, inputErr.Message)
	case errors.As(err, &timeoutErr):
		s.errorResponse(w, http.StatusRequestTimeout, "Request timeout")
	case errors.As(err, &unavailErr):
		log.Printf("[server] upstream unavailable: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Scrape failed")
	default:
		log.Printf("[server] scrape failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Scrape failed")
	}
}
