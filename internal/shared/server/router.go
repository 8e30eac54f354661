package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"candidature-backend/internal/candidatures"
	"candidature-backend/internal/cv"
	"candidature-backend/internal/extract"
	"candidature-backend/internal/letterpdf"
	"candidature-backend/internal/llm"
	"candidature-backend/internal/llm/anthropic"
	"candidature-backend/internal/llm/xai"
	"candidature-backend/internal/mailer"
	"candidature-backend/internal/savedsearches"
	"candidature-backend/internal/scrape"
	"candidature-backend/internal/search"
	"candidature-backend/internal/shared/config"
	"candidature-backend/internal/shared/metrics"
	"candidature-backend/internal/shared/server/middleware"
	"candidature-backend/internal/shared/server/respond"
	"candidature-backend/internal/shared/storage/db"
	localstore "candidature-backend/internal/shared/storage/object/local"
	"candidature-backend/internal/shared/telemetry"
	"candidature-backend/internal/websearch"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	// Dependencies
	store := localstore.New(cfg.LocalStoreDir)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var candRepo candidatures.Repo
	if sqlDB != nil {
		candRepo = &candidatures.PGRepo{DB: sqlDB}
	} else {
		candRepo = candidatures.NewMemoryRepo()
	}
	var savedRepo savedsearches.Repo
	if sqlDB != nil {
		savedRepo = &savedsearches.PGRepo{DB: sqlDB}
	} else {
		savedRepo = savedsearches.NewMemoryRepo()
	}

	profile := llm.Profile{
		Name:         cfg.ProfileName,
		Education:    cfg.ProfileEducation,
		Skills:       cfg.ProfileSkills,
		Experience:   cfg.ProfileExperience,
		Objective:    cfg.ProfileObjective,
		Availability: cfg.ProfileAvailability,
	}
	letters := buildLLMClient(cfg, profile)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, cfg.ProfileName)
	renderer := letterpdf.NewRenderer(letterpdf.Contact{
		Name:    cfg.ProfileName,
		Address: cfg.ProfileAddress,
		Email:   cfg.ProfileEmail,
		Phone:   cfg.ProfilePhone,
	})

	candSvc := &candidatures.Service{
		Repo:    candRepo,
		Letters: letters,
		Mail:    mail,
		CVTexts: extract.TextSource{Store: store},
	}
	candHandler := candidatures.NewHandler(candSvc, renderer)

	searchSvc := &search.Service{
		Providers: buildProviders(cfg),
		Repo:      candRepo,
	}
	searchHandler := search.NewHandler(searchSvc)

	scrapeHandler := scrape.NewHandler(scrape.NewScraper())
	savedHandler := savedsearches.NewHandler(savedRepo)
	companyHandler := websearch.NewHandler(websearch.NewClient(cfg.GoogleSearchAPIKey, cfg.GoogleSearchCX))
	cvHandler := cv.NewHandler(store)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.APISecret))
	// Endpoints that fan out to third parties get a per-client budget.
	protected.Use(middleware.RateLimit(middleware.RateLimitConfig{
		Limiter: middleware.NewRateLimiter(nil),
		GroupFor: func(c *gin.Context) string {
			switch c.FullPath() {
			case "/api/v1/scrape":
				return "SCRAPE"
			case "/api/v1/search", "/api/v1/search-companies":
				return "SEARCH"
			}
			return ""
		},
		Rules: map[string]middleware.RateLimitRule{
			"SCRAPE": {Rate: 1, Burst: 5},
			"SEARCH": {Rate: 0.5, Burst: 3},
		},
	}))
	candHandler.RegisterRoutes(protected)
	searchHandler.RegisterRoutes(protected)
	scrapeHandler.RegisterRoutes(protected)
	savedHandler.RegisterRoutes(protected)
	companyHandler.RegisterRoutes(protected)
	cvHandler.RegisterRoutes(protected)
	protected.GET("/metrics", metrics.Handler())

	return r
}

// buildLLMClient picks the letter provider from configuration. A missing or
// unusable provider yields the placeholder, which fails at call time rather
// than at startup.
func buildLLMClient(cfg config.Config, profile llm.Profile) llm.Client {
	switch cfg.LLMProvider {
	case "anthropic":
		client, err := anthropic.NewClient(cfg.AnthropicAPIKey, cfg.LLMModel, profile)
		if err != nil {
			telemetry.Error("llm.init_failed", map[string]any{"provider": "anthropic", "error": err.Error()})
			return llm.PlaceholderClient{}
		}
		return client
	case "xai":
		client, err := xai.NewClient(cfg.XAIAPIKey, cfg.LLMModel, profile)
		if err != nil {
			telemetry.Error("llm.init_failed", map[string]any{"provider": "xai", "error": err.Error()})
			return llm.PlaceholderClient{}
		}
		return client
	default:
		telemetry.Error("llm.init_failed", map[string]any{"provider": cfg.LLMProvider, "error": "unknown provider"})
		return llm.PlaceholderClient{}
	}
}

// buildProviders returns the configured job boards in a fixed order so
// aggregated results stay stable across runs.
func buildProviders(cfg config.Config) []search.Provider {
	var providers []search.Provider
	if cfg.RapidAPIKey != "" {
		providers = append(providers, search.NewJSearchProvider(cfg.RapidAPIKey))
	}
	if cfg.AdzunaAppID != "" && cfg.AdzunaAppKey != "" {
		providers = append(providers, search.NewAdzunaProvider(cfg.AdzunaAppID, cfg.AdzunaAppKey))
	}
	if cfg.FranceTravailID != "" && cfg.FranceTravailSecret != "" {
		providers = append(providers, search.NewFranceTravailProvider(cfg.FranceTravailID, cfg.FranceTravailSecret))
	}
	return providers
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
