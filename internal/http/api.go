package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"reeflog/internal/services"
)

type AquariumDTO struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	CreatedAt *string `json:"created_at"`
	ImageURL  *string `json:"image_url"`
	HasImage  bool    `json:"has_image"`
}

type MeasurementDTO struct {
	ID        int64    `json:"id"`
	Date      string   `json:"date"`
	Nitrate   *float64 `json:"nitrate"`
	Phosphate *float64 `json:"phosphate"`
	KH        *float64 `json:"kh"`
	Magnesium *int64   `json:"magnesium"`
	Calcium   *int64   `json:"calcium"`
}

func (s *Server) ListAquariums(w http.ResponseWriter, r *http.Request) {
	aquariums, err := services.ListAquariums(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]AquariumDTO, 0, len(aquariums))
	for _, aquarium := range aquariums {
		dto := AquariumDTO{
			ID:   aquarium.ID,
			Name: aquarium.Name,
		}
		if _, err := time.Parse(services.DateLayout, aquarium.CreatedAt); err == nil {
			createdAt := aquarium.CreatedAt
			dto.CreatedAt = &createdAt
		}
		if aquarium.ImagePath != nil {
			url := "/aquarium/" + strconv.FormatInt(aquarium.ID, 10) + "/image"
			dto.ImageURL = &url
			dto.HasImage = true
		}
		items = append(items, dto)
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) ListMeasurements(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "aquariumId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Aquarium not found.")
		return
	}
	if _, err := services.GetAquarium(s.DB, id); err != nil {
		WriteServiceError(w, err)
		return
	}
	measurements, err := services.ListMeasurements(s.DB, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	items := make([]MeasurementDTO, 0, len(measurements))
	for _, m := range measurements {
		items = append(items, MeasurementDTO{
			ID:        m.ID,
			Date:      m.Date,
			Nitrate:   m.Nitrate,
			Phosphate: m.Phosphate,
			KH:        m.KH,
			Magnesium: m.Magnesium,
			Calcium:   m.Calcium,
		})
	}
	WriteJSON(w, http.StatusOK, items)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	snapshot, err := services.CaptureHealth(s.DB, s.Config.UploadDir)
	if err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, snapshot)
		return
	}
	WriteJSON(w, http.StatusOK, snapshot)
}
