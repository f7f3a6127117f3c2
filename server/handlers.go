package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/polarsquad/ecoestate/common/model"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePostalBoundaries serves the postal-code area polygons. A total
// fetch failure has no safe fallback and maps to a 500.
func (s *Server) handlePostalBoundaries(w http.ResponseWriter, r *http.Request) {
	fc, err := s.services.Boundaries.PostalBoundaries(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch postal boundaries")
		return
	}
	writeJSON(w, http.StatusOK, fc)
}

// handleGreenSpaces always answers 200; the service degrades to an empty
// collection on failure.
func (s *Server) handleGreenSpaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.services.GreenSpaces.GreenSpaces(r.Context()))
}

type walkingDistanceResponse struct {
	Zone *model.WalkingZone `json:"zone"`
}

func (s *Server) handleWalkingDistance(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseFloat(r.URL.Query().Get("x"), 64)
	y, errY := strconv.ParseFloat(r.URL.Query().Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, http.StatusBadRequest, "x and y must be numeric coordinates")
		return
	}
	zone := s.services.Walking.WalkingDistance(r.Context(), x, y)
	writeJSON(w, http.StatusOK, walkingDistanceResponse{Zone: zone})
}

// handlePropertyPrices validates the year range here, at the caller side of
// the price service; the service itself only checks the format.
func (s *Server) handlePropertyPrices(w http.ResponseWriter, r *http.Request) {
	yearParam := r.URL.Query().Get("year")
	year, err := strconv.Atoi(yearParam)
	if err != nil || year < MinPriceYear || year > s.now().Year() {
		writeError(w, http.StatusBadRequest, "year must be between 2010 and the current year")
		return
	}
	rows, err := s.services.Prices.PropertyPrices(r.Context(), yearParam)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch property prices")
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handlePriceTrends(w http.ResponseWriter, r *http.Request) {
	startYear, errStart := strconv.Atoi(r.URL.Query().Get("startYear"))
	endYear, errEnd := strconv.Atoi(r.URL.Query().Get("endYear"))
	if errStart != nil || errEnd != nil ||
		startYear < MinPriceYear || endYear > s.now().Year() || endYear <= startYear {
		writeError(w, http.StatusBadRequest, "startYear and endYear must form a window within 2010 and the current year")
		return
	}
	result, err := s.services.Trends.PriceTrends(r.Context(), startYear, endYear)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute price trends")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
