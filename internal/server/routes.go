package server

import (
	"net/http"
)

func SetupRoutes(zoneHandler *ZoneService) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/zones/", zoneHandler.GetZoneStats)

	return mux
}
