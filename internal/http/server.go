package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"reeflog/internal/config"
)

type Server struct {
	DB     *sqlx.DB
	Config config.Config
}

func NewServer(db *sqlx.DB, cfg config.Config) *Server {
	return &Server{
		DB:     db,
		Config: cfg,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Get("/", s.Dashboard)
	r.Post("/aquarium", s.CreateAquarium)
	r.Post("/aquarium/{aquariumId}", s.UpdateAquarium)
	r.Get("/aquarium/{aquariumId}/image", s.AquariumImage)
	r.Post("/measurement", s.CreateMeasurement)

	r.Route("/api", func(api chi.Router) {
		api.Get("/aquariums", s.ListAquariums)
		api.Get("/measurements/{aquariumId}", s.ListMeasurements)
		api.Get("/health", s.Health)
	})

	return r
}
