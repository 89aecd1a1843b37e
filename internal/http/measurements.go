package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"reeflog/internal/services"
)

func (s *Server) CreateMeasurement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		redirectHome(w, r, "danger", "The submitted form could not be read.", 0)
		return
	}
	form := services.MeasurementForm{
		AquariumID: r.FormValue("aquarium_id"),
		Date:       r.FormValue("date"),
		Nitrate:    r.FormValue("nitrate"),
		Phosphate:  r.FormValue("phosphate"),
		KH:         r.FormValue("kh"),
		Magnesium:  r.FormValue("magnesium"),
		Calcium:    r.FormValue("calcium"),
	}
	// Keep the caller's selection across a failure redirect when the id at
	// least parses.
	selected, _ := strconv.ParseInt(strings.TrimSpace(form.AquariumID), 10, 64)
	if selected < 0 {
		selected = 0
	}
	_, aquariumID, err := services.CreateMeasurement(s.DB, form)
	if err != nil {
		redirectHome(w, r, "danger", mutationMessage(err, "Could not save the measurement."), selected)
		return
	}
	redirectHome(w, r, "success", "Measurement saved.", aquariumID)
}
