package api

import (
	"net/http"
	"time"

	"newsportal/internal/api/handler"
	"newsportal/internal/api/middleware"
	"newsportal/internal/app/service"
	"newsportal/internal/common/security"
	"newsportal/internal/domain/repository"
	"newsportal/internal/platform/cache"
	"newsportal/internal/platform/config"
	"newsportal/internal/platform/storage"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	newsService *service.NewsService,
	statsService *service.StatsService,
	userRepo repository.UserRepository,
	denylist *cache.TokenDenylist,
	images *storage.LocalImageStore,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   config.AppConfig.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Token lookup order: named cookie first, Authorization header second.
	// Verification happens here; the Authenticator fails closed on the result.
	r.Use(jwtauth.Verify(security.TokenAuth, middleware.TokenFromCookie, jwtauth.TokenFromHeader))

	authenticate := middleware.Authenticator(denylist)
	adminOnly := middleware.AdminOnly(userRepo)

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Stored article images
	r.Handle(config.AppConfig.UploadPrefix+"/*",
		http.StripPrefix(config.AppConfig.UploadPrefix+"/",
			http.FileServer(http.Dir(images.Dir()))))

	// Auth routes (public; logout checks the cookie itself)
	authHandler := handler.NewAuthHandler(authService, denylist)
	r.Route("/auth", authHandler.RegisterRoutes)

	// News routes (public reads, protected mutations and author views)
	newsHandler := handler.NewNewsHandler(newsService, statsService, images, config.AppConfig.LatestNewsLimit)
	newsHandler.RegisterRoutes(r, authenticate)

	// Site-wide dashboards (authenticated; admin view role-gated)
	dashboardHandler := handler.NewDashboardHandler(statsService)
	r.Route("/dashboard", func(dr chi.Router) {
		dr.Use(authenticate)
		dashboardHandler.RegisterRoutes(dr, adminOnly)
	})

	return r
}
