package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	_ "vendorhub/docs"
	"vendorhub/internal/api/v1/handler"
	"vendorhub/internal/config"
	"vendorhub/internal/metrics"
	"vendorhub/internal/middleware"
	"vendorhub/internal/pubsub"
	"vendorhub/internal/repository"
	"vendorhub/internal/repository/memory"
	"vendorhub/internal/service"
	"vendorhub/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/swaggo/swag"
)

// Backend is the data layer the API runs on.
type Backend struct {
	Organizations repository.OrganizationRepository
	Vendors       repository.VendorRepository
	Categories    repository.CategoryRepository
	Subscriptions repository.SubscriptionRepository
	Documents     repository.DocumentRepository
	Renewals      repository.RenewalRepository
	Activity      repository.ActivityRepository
	Objects       storage.ObjectStore

	// Ping reports backend health; nil means always healthy.
	Ping  func(ctx context.Context) error
	Close func()
}

// MemoryBackend serves every repository from one in-process store.
func MemoryBackend(store *memory.Store, objects storage.ObjectStore) *Backend {
	return &Backend{
		Organizations: store,
		Vendors:       store,
		Categories:    store,
		Subscriptions: store,
		Documents:     store,
		Renewals:      store,
		Activity:      store,
		Objects:       objects,
		Close:         func() {},
	}
}

// NewBackend opens the backend selected by DATA_BACKEND.
func NewBackend(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Backend, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		store := memory.New()
		if cfg.SeedUserID != "" {
			orgID, err := memory.Seed(ctx, store, cfg.SeedUserID, cfg.SeedUserEmail)
			if err != nil {
				return nil, fmt.Errorf("seed memory backend: %w", err)
			}
			logger.Info().Str("organization_id", orgID).Str("user_id", cfg.SeedUserID).Msg("Seeded demo organization")
		}
		logger.Warn().Msg("Using in-memory backend, data is lost on restart")
		return MemoryBackend(store, storage.NewMemoryStore("http://localhost:"+cfg.Port+"/objects")), nil

	case config.BackendPostgres:
		pool, err := repository.NewPool(ctx, cfg.DBConnectionString, cfg.IsDevelopment())
		if err != nil {
			return nil, err
		}
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info().Msg("Database connection successful")

		s3Client, err := storage.NewS3Client(ctx, storage.S3Config{
			URL:       cfg.S3URL,
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Organizations: repository.NewOrganizationRepo(pool),
			Vendors:       repository.NewVendorRepo(pool),
			Categories:    repository.NewCategoryRepo(pool),
			Subscriptions: repository.NewSubscriptionRepo(pool),
			Documents:     repository.NewDocumentRepo(pool),
			Renewals:      repository.NewRenewalRepo(pool),
			Activity:      repository.NewActivityRepo(pool),
			Objects:       storage.NewS3Store(s3Client, cfg.S3Bucket, logger),
			Ping:          pool.Ping,
			Close:         pool.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
}

// New builds the backend and the HTTP handler. The returned cleanup closes
// the backend and the Pub/Sub client.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	backend, err := NewBackend(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var publisher pubsub.Publisher
	cleanup := backend.Close
	if cfg.GCPProjectID != "" {
		p, err := pubsub.NewPublisher(ctx, cfg.GCPProjectID)
		if err != nil {
			backend.Close()
			return nil, nil, err
		}
		publisher = p
		cleanup = func() {
			if err := p.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close Pub/Sub client")
			}
			backend.Close()
		}
	} else {
		logger.Info().Msg("GCP_PROJECT_ID not set, activity events are not published")
	}

	return NewHandler(cfg, backend, publisher, logger), cleanup, nil
}

// NewHandler wires services, handlers and middleware on top of backend.
// publisher may be nil.
func NewHandler(cfg *config.Config, backend *Backend, publisher pubsub.Publisher, logger zerolog.Logger) http.Handler {
	validate := validator.New(validator.WithRequiredStructEnabled())

	activitySvc := service.NewActivityService(backend.Activity, publisher, cfg.ActivityTopic, logger)
	subscriptionSvc := service.NewSubscriptionService(backend.Subscriptions, backend.Vendors, backend.Renewals, activitySvc, logger)
	vendorSvc := service.NewVendorService(backend.Vendors, backend.Subscriptions, activitySvc, logger)
	categorySvc := service.NewCategoryService(backend.Categories)
	orgSvc := service.NewOrganizationService(backend.Organizations, subscriptionSvc, backend.Vendors, activitySvc, logger)
	documentSvc := service.NewDocumentService(backend.Documents, backend.Vendors, backend.Subscriptions, backend.Objects, activitySvc, cfg.DocumentMaxBytes(), logger)

	uploadLimiter := middleware.NewRateLimiter(cfg.DocumentUploadRatePerSec, cfg.DocumentUploadBurst)

	authMw := middleware.AuthMiddleware(cfg.JWTSecret, logger)
	tenantMw := middleware.TenantMiddleware(orgSvc, logger)

	apiV1Mux := http.NewServeMux()
	handler.NewOrganizationHandler(orgSvc, activitySvc, validate, logger).RegisterRoutes(apiV1Mux, authMw, tenantMw)
	handler.NewVendorHandler(vendorSvc, categorySvc, subscriptionSvc, validate, logger).RegisterRoutes(apiV1Mux, authMw, tenantMw)
	handler.NewSubscriptionHandler(subscriptionSvc, validate, logger).RegisterRoutes(apiV1Mux, authMw, tenantMw)
	handler.NewDocumentHandler(documentSvc, uploadLimiter, cfg.DocumentMaxBytes(), logger).RegisterRoutes(apiV1Mux, authMw, tenantMw)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", middleware.RoutePattern("/v1", apiV1Mux)))
	mux.HandleFunc("GET /healthz", healthz(backend, logger))
	if objects, ok := backend.Objects.(*storage.MemoryStore); ok {
		mux.HandleFunc("GET /objects/{key...}", serveObject(objects, logger))
	}
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, "Swagger document unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})

	// Redirect /api/* to /v1/* for older clients
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
	})

	var h http.Handler = c.Handler(middleware.RoutePattern("", mux))
	h = middleware.MetricsMiddleware(h)
	h = middleware.LoggerMiddleware(logger)(h)
	h = middleware.RequestIDMiddleware(h)
	logger.Info().Str("backend", cfg.DataBackend).Msg("Router initialized")
	return h
}

// serveObject redeems download links issued by the in-memory object store.
func serveObject(objects *storage.MemoryStore, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		data, contentType, err := objects.Open(r.PathValue("key"), q.Get("expires"), q.Get("signature"))
		switch {
		case errors.Is(err, storage.ErrObjectNotFound):
			http.Error(w, "Object not found", http.StatusNotFound)
			return
		case errors.Is(err, storage.ErrLinkExpired), errors.Is(err, storage.ErrLinkInvalid):
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		case err != nil:
			logger.Error().Err(err).Msg("Failed to read object")
			http.Error(w, "Failed to read object", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.Write(data)
	}
}

func healthz(backend *Backend, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if backend.Ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := backend.Ping(ctx); err != nil {
				logger.Error().Err(err).Msg("Health check failed")
				http.Error(w, "unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	}
}
