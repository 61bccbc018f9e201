package main

import (
	"net/http"

	"ocdb/cleanup"
	"ocdb/extraction"
	"ocdb/ingest"
	"ocdb/report"
	"ocdb/store"
	"ocdb/venues"
)

func SetupRoutes(mux *http.ServeMux, st *store.VenueStore, ex *extraction.Extractor) {

	mux.HandleFunc("/api/venues", venues.ListVenuesHandler(st))
	mux.HandleFunc("/api/venues/upload", ingest.UploadVenuesHandler(st, ex))
	mux.HandleFunc("/api/venues/update", venues.UpdateVenueHandler(st))
	mux.HandleFunc("/api/venues/delete/", venues.DeleteVenueHandler(st))

	mux.HandleFunc("/api/cleanup/preview", cleanup.PreviewCleanupHandler(st))
	mux.HandleFunc("/api/cleanup/apply", cleanup.ApplyCleanupHandler(st))

	mux.HandleFunc("/api/report/pdf", report.ExportPDFHandler(st))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
}
