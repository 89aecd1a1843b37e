package httpapi

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"reeflog/internal/services"
)

func (s *Server) CreateAquarium(w http.ResponseWriter, r *http.Request) {
	image, file, err := s.parseAquariumForm(w, r)
	if err != nil {
		redirectHome(w, r, "danger", "The uploaded form could not be read.", 0)
		return
	}
	if file != nil {
		defer file.Close()
	}

	id, err := services.CreateAquarium(s.DB, s.Config.UploadDir, r.FormValue("name"), r.FormValue("created_at"), image)
	if err != nil {
		redirectHome(w, r, "danger", mutationMessage(err, "Could not create the aquarium."), 0)
		return
	}
	redirectHome(w, r, "success", "Aquarium created.", id)
}

func (s *Server) UpdateAquarium(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "aquariumId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Aquarium not found.")
		return
	}
	image, file, err := s.parseAquariumForm(w, r)
	if err != nil {
		redirectHome(w, r, "danger", "The uploaded form could not be read.", id)
		return
	}
	if file != nil {
		defer file.Close()
	}

	err = services.UpdateAquarium(s.DB, s.Config.UploadDir, id, r.FormValue("name"), r.FormValue("created_at"), image)
	if services.IsNotFound(err) {
		WriteError(w, http.StatusNotFound, "Aquarium not found.")
		return
	}
	if err != nil {
		redirectHome(w, r, "danger", mutationMessage(err, "Could not update the aquarium."), id)
		return
	}
	redirectHome(w, r, "success", "Aquarium updated.", id)
}

func (s *Server) AquariumImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "aquariumId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Aquarium not found.")
		return
	}
	aquarium, err := services.GetAquarium(s.DB, id)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if aquarium.ImagePath == nil {
		WriteError(w, http.StatusNotFound, "This aquarium has no photo.")
		return
	}
	path, err := services.ImagePath(s.Config.UploadDir, *aquarium.ImagePath)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", services.ContentTypeFor(*aquarium.ImagePath))
	http.ServeFile(w, r, path)
}

// parseAquariumForm reads the multipart create/update form, honoring the
// configured upload cap, and extracts the optional photo. The returned file
// must be closed by the caller on every path once it is non-nil.
func (s *Server) parseAquariumForm(w http.ResponseWriter, r *http.Request) (*services.ImageUpload, multipart.File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.Config.MaxUploadBytes)
	err := r.ParseMultipartForm(s.Config.MaxUploadBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if header.Filename == "" {
		_ = file.Close()
		return nil, nil, nil
	}
	return &services.ImageUpload{Filename: header.Filename, Body: file}, file, nil
}

// mutationMessage picks the user-facing text for a failed mutation. Store
// failures and errors outside the taxonomy are logged and replaced with the
// generic fallback.
func mutationMessage(err error, fallback string) string {
	var serviceErr services.ServiceError
	if errors.As(err, &serviceErr) && serviceErr.Status != http.StatusInternalServerError {
		return serviceErr.Message
	}
	log.Printf("mutation failed: %v", err)
	return fallback
}

func redirectHome(w http.ResponseWriter, r *http.Request, level, msg string, aquariumID int64) {
	values := url.Values{}
	if msg != "" {
		values.Set("msg", msg)
		values.Set("level", level)
	}
	if aquariumID > 0 {
		values.Set("aquarium_id", strconv.FormatInt(aquariumID, 10))
	}
	target := "/"
	if encoded := values.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
