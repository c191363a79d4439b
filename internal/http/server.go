package httpapi

import (
	"net/http"
	"time"

	"zapgroups-backend-go/internal/config"
	"zapgroups-backend-go/internal/rowstore"
	"zapgroups-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB         *sqlx.DB
	Store      services.Store
	Config     config.Config
	Tokens     services.TokenService
	MetricsHub *services.MetricsHub
}

func NewServer(database *sqlx.DB, cfg config.Config, hub *services.MetricsHub) *Server {
	store := services.Store{
		Client:       rowstore.NewClient(cfg.RowStoreURL, cfg.RowStoreToken),
		GroupsTable:  cfg.GroupsTableID,
		ReportsTable: cfg.ReportsTableID,
		UsersTable:   cfg.UsersTableID,
	}
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		SessionTTL: time.Duration(cfg.SessionTTLSeconds) * time.Second,
	}
	return &Server{
		DB:         database,
		Store:      store,
		Config:     cfg,
		Tokens:     tokens,
		MetricsHub: hub,
	}
}

func (s *Server) BoostWindow() time.Duration {
	return time.Duration(s.Config.BoostTTLSeconds) * time.Second
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/logout", s.Logout)

		api.Route("/public", func(pub chi.Router) {
			pub.Get("/groups", s.PublicGroups)
			pub.Get("/groups/{slug}", s.PublicGroupDetail)
			pub.Post("/groups/{groupId}/click", s.RecordClick)
			pub.Post("/groups/{groupId}/reports", s.ReportGroup)
			pub.Get("/categories", s.ListCategories)
			pub.Post("/visits", s.TrackVisit)
			pub.Get("/visits/count", s.VisitCount)
		})

		api.Route("/me", func(me chi.Router) {
			me.Use(WithAuth(s.Tokens))
			me.Get("/", s.Me)
			me.Get("/groups", s.MyGroups)
			me.Post("/groups", s.CreateGroup)
			me.Get("/groups/{groupId}", s.MyGroupDetail)
			me.Put("/groups/{groupId}", s.UpdateGroup)
			me.Post("/groups/{groupId}/boost", s.BoostGroup)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(WithAuth(s.Tokens))
			admin.Use(RequireAdmin)
			admin.Get("/groups", s.AdminGroups)
			admin.Put("/groups/{groupId}/status", s.AdminToggleStatus)
			admin.Delete("/groups/{groupId}", s.AdminDeleteGroup)
			admin.Get("/reports", s.AdminReports)
			admin.Get("/metrics/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
