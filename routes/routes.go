package routes

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/league-api/handlers"
	"github.com/Dosada05/league-api/middleware"
	"github.com/Dosada05/league-api/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Tournament *handlers.TournamentHandler
	Team       *handlers.TeamHandler
	Player     *handlers.PlayerHandler
	Match      *handlers.MatchHandler
	Bracket    *handlers.BracketHandler
	Stats      *handlers.StatsHandler
	Court      *handlers.CourtHandler
	Commerce   *handlers.CommerceHandler
	Media      *handlers.MediaHandler
	Sponsor    *handlers.SponsorHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	Tokens      middleware.TokenParser
	Logger      *slog.Logger
	CORSOrigins []string
}

func InitRoutes(h Handlers, opts Options) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	router.Use(chiMiddleware.Heartbeat("/healthz"))

	authenticate := middleware.Authenticate(opts.Tokens, opts.Logger)
	organizers := middleware.RequireRole(models.RoleOrganizer, models.RoleAdmin)
	sponsors := middleware.RequireRole(models.RoleSponsor, models.RoleAdmin)
	admins := middleware.RequireRole(models.RoleAdmin)

	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.With(authenticate).Get("/me", h.User.GetMe)
		})

		r.Route("/tournaments", func(r chi.Router) {
			// Публичные маршруты для просмотра турниров
			r.Get("/", h.Tournament.ListHandler)
			r.Get("/{tournamentID}", h.Tournament.GetByIDHandler)
			r.Get("/{tournamentID}/teams", h.Team.ListTournamentTeamsHandler)
			r.Get("/{tournamentID}/matches", h.Match.ListTournamentMatchesHandler)
			r.Get("/{tournamentID}/bracket", h.Bracket.GetHandler)

			// Защищенные маршруты только для организаторов
			r.Group(func(r chi.Router) {
				r.Use(authenticate, organizers)

				r.Post("/", h.Tournament.CreateHandler)
				r.Patch("/{tournamentID}", h.Tournament.UpdateHandler)
				r.Delete("/{tournamentID}", h.Tournament.DeleteHandler)
				r.Post("/{tournamentID}/bracket", h.Bracket.GenerateHandler)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.ListTeamsHandler)
			r.Get("/{teamID}", h.Team.GetTeamByIDHandler)
			r.Get("/{teamID}/players", h.Player.ListTeamPlayersHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Post("/", h.Team.CreateTeamHandler)
				r.Patch("/{teamID}", h.Team.UpdateTeamHandler)
				r.Delete("/{teamID}", h.Team.DeleteTeamHandler)
			})
		})

		r.Route("/players", func(r chi.Router) {
			r.Get("/", h.Player.ListPlayersHandler)
			r.Get("/{playerID}", h.Player.GetPlayerByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Post("/", h.Player.CreatePlayerHandler)
				r.Patch("/{playerID}", h.Player.UpdatePlayerHandler)
				r.Delete("/{playerID}", h.Player.DeletePlayerHandler)
			})
		})

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Match.ListMatchesHandler)
			r.Get("/{matchID}", h.Match.GetMatchByIDHandler)
			r.Get("/{matchID}/boxscore", h.Match.BoxscoreHandler)
			r.Get("/{matchID}/stats", h.Stats.ListMatchStatsHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, organizers)

				r.Post("/", h.Match.CreateMatchHandler)
				r.Patch("/{matchID}", h.Match.UpdateMatchHandler)
				r.Delete("/{matchID}", h.Match.DeleteMatchHandler)
				r.Put("/{matchID}/score", h.Match.UpdateScoreHandler)
				r.Put("/{matchID}/mvp", h.Match.SetMVPHandler)
				r.Post("/{matchID}/reopen", h.Match.ReopenMatchHandler)
				r.Put("/{matchID}/stats/{playerID}", h.Stats.UpsertPlayerStatsHandler)
			})
		})

		r.Route("/match-stats", func(r chi.Router) {
			r.Get("/", h.Stats.ListStatsHandler)
			r.Get("/{statsID}", h.Stats.GetStatsHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, organizers)

				r.Post("/", h.Stats.CreateStatsHandler)
				r.Patch("/{statsID}", h.Stats.PatchStatsHandler)
			})
		})

		r.Route("/courts", func(r chi.Router) {
			r.Get("/", h.Court.ListCourtsHandler)
			r.Get("/{courtID}", h.Court.GetCourtByIDHandler)
			r.Get("/{courtID}/visibility-logs", h.Court.ListVisibilityLogsHandler)
			r.Get("/{courtID}/visibility", h.Court.VisibilitySummaryHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, organizers)

				r.Post("/", h.Court.CreateCourtHandler)
				r.Patch("/{courtID}", h.Court.UpdateCourtHandler)
				r.Delete("/{courtID}", h.Court.DeleteCourtHandler)
				r.Post("/{courtID}/visibility-logs", h.Court.AddVisibilityLogHandler)
			})
		})

		r.Get("/sponsors/overview", h.Court.SponsorOverviewHandler)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Commerce.ListProductsHandler)
			r.Get("/{productID}", h.Commerce.GetProductByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, organizers)

				r.Post("/", h.Commerce.CreateProductHandler)
				r.Patch("/{productID}", h.Commerce.UpdateProductHandler)
				r.Delete("/{productID}", h.Commerce.DeleteProductHandler)
			})
		})

		// Заказы видны только владельцу и администратору
		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/", h.Commerce.ListOrdersHandler)
			r.Post("/", h.Commerce.CreateOrderHandler)
			r.Get("/{orderID}", h.Commerce.GetOrderByIDHandler)
			r.With(admins).Patch("/{orderID}", h.Commerce.UpdateOrderStatusHandler)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.Media.ListMediaHandler)
			r.Get("/{mediaID}", h.Media.GetMediaByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)

				r.Post("/", h.Media.CreateMediaHandler)
				r.Post("/upload", h.Media.UploadMediaHandler)
				r.Delete("/{mediaID}", h.Media.DeleteMediaHandler)
			})
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.Post("/", h.Sponsor.CreateInquiryHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, admins)

				r.Get("/", h.Sponsor.ListInquiriesHandler)
				r.Get("/{inquiryID}", h.Sponsor.GetInquiryByIDHandler)
				r.Patch("/{inquiryID}", h.Sponsor.UpdateInquiryHandler)
			})
		})

		r.Route("/brand-assets", func(r chi.Router) {
			r.Get("/", h.Sponsor.ListBrandAssetsHandler)
			r.Get("/{assetID}", h.Sponsor.GetBrandAssetByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(authenticate, sponsors)

				r.Post("/", h.Sponsor.CreateBrandAssetHandler)
				r.Delete("/{assetID}", h.Sponsor.DeleteBrandAssetHandler)
			})
		})
	})

	return router
}
