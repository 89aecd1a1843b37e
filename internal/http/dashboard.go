package httpapi

import (
	"embed"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"reeflog/internal/models"
	"reeflog/internal/services"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

type dashboardData struct {
	Aquariums  []models.Aquarium
	SelectedID int64
	Msg        string
	Level      string
	Today      string
}

func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	aquariums, err := services.ListAquariums(s.DB)
	if err != nil {
		log.Printf("dashboard: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	selectedID, _ := strconv.ParseInt(r.URL.Query().Get("aquarium_id"), 10, 64)
	if selectedID == 0 && len(aquariums) > 0 {
		selectedID = aquariums[0].ID
	}
	data := dashboardData{
		Aquariums:  aquariums,
		SelectedID: selectedID,
		Msg:        r.URL.Query().Get("msg"),
		Level:      r.URL.Query().Get("level"),
		Today:      time.Now().UTC().Format(services.DateLayout),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, data); err != nil {
		log.Printf("dashboard render: %v", err)
	}
}
