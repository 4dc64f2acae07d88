package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tripload/internal/database"
)

type ZoneService struct {
	Store database.Store
}

func NewZoneService(store database.Store) *ZoneService {
	return &ZoneService{Store: store}
}

// GetZoneStats serves /zones/{id}. The optional start_date query parameter
// (YYYY-MM-DD) bounds the aggregate; it defaults to seven days back.
func (h *ZoneService) GetZoneStats(w http.ResponseWriter, r *http.Request) {
	zoneStr := strings.TrimPrefix(r.URL.Path, "/zones/")
	if zoneStr == "" {
		http.Error(w, "Zone ID is required in the URL path /zones/{id}", http.StatusBadRequest)
		return
	}

	zoneID, err := strconv.Atoi(zoneStr)
	if err != nil {
		http.Error(w, "Zone ID must be an integer", http.StatusBadRequest)
		return
	}

	var startDate time.Time
	startDateStr := r.URL.Query().Get("start_date")

	if startDateStr == "" {
		startDate = time.Now().AddDate(0, 0, -7)
	} else {
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			http.Error(w, "Invalid 'start_date' format. Use YYYY-MM-DD.", http.StatusBadRequest)
			return
		}
	}

	stats, err := h.Store.ZoneStats(zoneID, startDate)
	if err != nil {
		http.Error(w, "Failed to retrieve zone statistics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
