package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	limiterstdlib "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	limiterredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ecomjrm/storefront-api/internal/audit"
	"github.com/ecomjrm/storefront-api/internal/auth"
	"github.com/ecomjrm/storefront-api/internal/cart"
	"github.com/ecomjrm/storefront-api/internal/catalog"
	"github.com/ecomjrm/storefront-api/internal/checkout"
	"github.com/ecomjrm/storefront-api/internal/common"
	"github.com/ecomjrm/storefront-api/internal/config"
	"github.com/ecomjrm/storefront-api/internal/content"
	"github.com/ecomjrm/storefront-api/internal/db"
	dbgen "github.com/ecomjrm/storefront-api/internal/db/gen"
	"github.com/ecomjrm/storefront-api/internal/events"
	"github.com/ecomjrm/storefront-api/internal/health"
	"github.com/ecomjrm/storefront-api/internal/lock"
	"github.com/ecomjrm/storefront-api/internal/membership"
	"github.com/ecomjrm/storefront-api/internal/notify"
	"github.com/ecomjrm/storefront-api/internal/obs"
	"github.com/ecomjrm/storefront-api/internal/order"
	"github.com/ecomjrm/storefront-api/internal/queue"
	"github.com/ecomjrm/storefront-api/internal/ratelimit"
	"github.com/ecomjrm/storefront-api/internal/security"
	"github.com/ecomjrm/storefront-api/internal/settings"
	"github.com/ecomjrm/storefront-api/internal/shipping"
	"github.com/ecomjrm/storefront-api/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "storefront")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		sampling := envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0)
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "storefront-api",
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: sampling,
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				ctx := context.Background()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	if envBool("DB_AUTO_MIGRATE", false) {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "storefront-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}

	queries := dbgen.New(pool)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metricsEnabled {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}

	validate := validator.New()
	mailer := common.NopEmailSender{}

	catalogService, err := catalog.NewService(catalog.ServiceConfig{
		Queries:      queries,
		Cache:        catalog.NewCache(redisClient, cfg.CatalogCacheTTL),
		DefaultPage:  envInt("CATALOG_DEFAULT_PAGE", 1),
		DefaultLimit: envInt("CATALOG_DEFAULT_LIMIT", 20),
		MaxLimit:     envInt("CATALOG_MAX_LIMIT", 100),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise catalog service")
	}
	catalogHandler := catalog.NewHandler(catalog.HandlerConfig{Service: catalogService})
	catalogAdmin := &catalog.AdminHandler{Q: queries, Service: catalogService, Validate: validate}

	authService, err := auth.NewService(auth.Config{
		Queries:         queries,
		Secret:          cfg.JWTSecret,
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		ResetTokenTTL:   cfg.PasswordResetTTL,
		Issuer:          "storefront-api",
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise auth service")
	}
	authHandler := &auth.Handler{
		Service:               authService,
		Mailer:                mailer,
		AccessCookieName:      cfg.AccessCookieName,
		RefreshCookieName:     cfg.RefreshCookieName,
		CookieDomain:          cfg.CookieDomain,
		RefreshCookieSecure:   cfg.CookieSecure,
		RefreshCookieSameSite: cfg.CookieSameSite,
		PublicBaseURL:         cfg.PublicBaseURL,
	}
	authMiddleware := auth.Middleware{Service: authService, AccessCookie: cfg.AccessCookieName}

	authLimiter := ratelimit.Handler{
		Limiter: ratelimit.Limiter{Client: redisClient, Prefix: "rl"},
		Config: ratelimit.Config{
			Key:    func(r *http.Request) string { return "auth:" + common.ClientIP(r) },
			Window: cfg.RateLimitAuthWindow,
			Max:    cfg.RateLimitAuthMax,
		},
		OnError: func(err error) { logger.Error().Err(err).Msg("rate limiter") },
	}

	addressService := user.NewService(queries)
	addressHandler := &user.Handler{Service: addressService}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}

	settingsStore := settings.NewStore(queries, redisClient, cfg.MembershipConfigTTL, settings.MembershipConfig{
		Threshold:                  cfg.MembershipThreshold,
		EnablePromotionalExclusion: cfg.EnablePromotionalExclusion,
	})
	settingsHandler := &settings.Handler{Store: settingsStore, Validate: validate}

	membershipSvc := &membership.Service{Q: queries, Config: settingsStore}
	membershipHandler := &membership.Handler{Svc: membershipSvc, Currency: cfg.Currency}

	cartSvc := &cart.Service{Q: queries, TTL: cfg.CartTTL}
	cartHandler := &cart.Handler{
		Q:          queries,
		Svc:        cartSvc,
		Membership: membershipSvc,
		Currency:   cfg.Currency,
	}

	notifyStore := notify.NewStore(queries)
	dispatcher := &notify.Dispatcher{
		Store:          notifyStore,
		Client:         notify.HttpClient(int(cfg.WebhookRequestTimeout/time.Millisecond), envBool("WEBHOOK_ALLOW_INSECURE_TLS", false)),
		BackoffBaseSec: cfg.WebhookBackoffBaseSec,
		MaxAttempts:    cfg.WebhookMaxAttempts,
		Enabled:        cfg.WebhookDeliveryEnabled,
		Replay:         notify.RedisReplayProtector{Client: redisClient},
		ReplayTTL:      cfg.WebhookReplayTTL,
	}
	taskQueue := queue.Enqueuer{R: redisClient, Prefix: "q", DedupTTL: cfg.IdempotencyTTL}
	var notifiers []events.Notifier
	if envBool("NOTIFY_EMAIL_VIA_QUEUE", false) {
		notifiers = append(notifiers, notify.QueueNotifier{Q: taskQueue})
	} else {
		notifiers = append(notifiers, notify.EmailNotifier{
			Mail:    mailer,
			Enabled: cfg.NotifyEmailEnabled,
			From:    cfg.NotifyEmailFrom,
		})
	}
	bus := &events.Bus{
		Store:     queries,
		Scheduler: dispatcher,
		Notifiers: notifiers,
	}

	locker := lock.Locker{R: redisClient}
	activation := &membership.Activation{
		Q:      queries,
		Config: settingsStore,
		Bus:    bus,
		Locker: locker,
		Log:    logger,
	}

	checkoutSvc := &checkout.Service{
		Q:        queries,
		Pool:     pool,
		Config:   settingsStore,
		Currency: cfg.Currency,
		Events:   bus,
	}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc}

	orderHandler := &order.Handler{Q: queries}
	orderAdmin := &order.AdminHandler{Q: queries, Activation: activation, Events: bus, Log: logger}
	notifyAdmin := &notify.AdminHandler{Store: notifyStore}

	var shipProvider shipping.Provider
	var rateClient shipping.Client
	switch cfg.ShippingProvider {
	case "easyparcel":
		creds := shipping.NewCredentialCache(redisClient, cfg.EasyParcelCredentialTTL, func(ctx context.Context) (string, error) {
			return cfg.EasyParcelAPIKey, nil
		})
		easyparcel := &shipping.EasyParcel{BaseURL: cfg.EasyParcelBaseURL, Creds: creds}
		shipProvider = easyparcel
		rateClient = easyparcel
	default:
		shipProvider = shipping.TrackMock{}
		rateClient = shipping.MockClient{}
	}
	shipSvc := &shipping.Service{
		Q:                      queries,
		Provider:               shipProvider,
		Mail:                   mailer,
		NotifyOnShipped:        cfg.NotifyShipping,
		NotifyOnOutForDelivery: cfg.NotifyShipping,
		NotifyOnDelivered:      cfg.NotifyShipping,
		Events:                 bus,
	}
	shipHandler := &shipping.Handler{Svc: shipSvc, Q: queries}
	shipQuote := shipping.QuoteHandler{Client: rateClient}
	shipWebhook := shipping.Webhook{Svc: shipSvc, Replay: redisClient, ReplayTTL: cfg.WebhookReplayTTL}

	contentSvc := content.NewService(queries, content.NewCache(redisClient, cfg.CatalogCacheTTL), logger)
	contentHandler := &content.Handler{Service: contentSvc}
	contentAdmin := &content.AdminHandler{Q: queries, Service: contentSvc, Validate: validate}

	auditSvc := &audit.Service{
		Store:        queries,
		Enabled:      envBool("AUDIT_ENABLED", true),
		SamplingRate: envFloat("AUDIT_SAMPLING_RATE", 1.0),
	}
	auditHandler := audit.Handler{Store: queries}
	auditRecorder := audit.HTTPRecorder{
		Service: auditSvc,
		OnError: func(err error) { logger.Error().Err(err).Msg("record audit log") },
	}

	queueStore := queue.NewStore(pool)
	queueAdmin := &queue.AdminHandler{
		Store:  queueStore,
		Queue:  taskQueue,
		Logger: logger,
	}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(security.Headers{
		Enable:     envBool("SECURE_HEADERS_ENABLED", true),
		EnableHSTS: envBool("SECURE_HSTS_ENABLED", false),
	}.Middleware)
	r.Use(security.BodyLimit{Max: int64(envInt("SECURE_MAX_BODY_BYTES", 1<<20))}.Middleware)
	// Double-submit CSRF for cookie-authenticated mutations. Bearer clients
	// pass through untouched; courier webhooks stay outside the guarded
	// groups because they carry neither cookie nor token.
	csrfGuard := func(next http.Handler) http.Handler { return next }
	if envBool("SECURE_CSRF_ENABLED", true) {
		csrf := security.CSRF{
			Header:       envOrDefault("SECURE_CSRF_HEADER", "X-CSRF-Token"),
			CookieSecure: cfg.CookieSecure,
		}
		csrfGuard = csrf.Middleware
		r.Use(csrf.Seed)
	}
	if globalMax := envInt("RATELIMIT_GLOBAL_PER_MINUTE", 0); globalMax > 0 {
		store, err := limiterredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: "global_rl"})
		if err != nil {
			logger.Fatal().Err(err).Msg("initialise global rate limiter")
		}
		global := limiter.New(store, limiter.Rate{Period: time.Minute, Limit: int64(globalMax)})
		r.Use(limiterstdlib.NewMiddleware(global).Handler)
	}
	r.Use(obs.RoutePatternMiddleware)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if metricsEnabled && httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(cfg),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-Total-Count"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	pprofEnabled := envBool("OBS_ENABLE_PPROF", true)
	if pprofEnabled {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      readinessChecker{db: pool, redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Get("/products", catalogHandler.Products)
		v.Get("/products/{slug}", catalogHandler.ProductDetail)

		v.Get("/content/faqs", contentHandler.Faqs)
		v.Get("/content/articles", contentHandler.Articles)
		v.Get("/content/articles/{slug}", contentHandler.ArticleDetail)

		v.Get("/track/{trackingNumber}", shipHandler.Track)
		v.Post("/shipping/quote", shipQuote.Quote)

		v.Route("/auth", func(a chi.Router) {
			a.Post("/register", authHandler.Register)
			a.With(authLimiter.Middleware).Post("/login", authHandler.Login)
			a.With(csrfGuard).Post("/refresh", authHandler.Refresh)
			a.With(csrfGuard).Post("/logout", authHandler.Logout)
			a.With(authLimiter.Middleware).Post("/password/forgot", authHandler.Forgot)
			a.Post("/password/reset", authHandler.Reset)

			a.Group(func(protected chi.Router) {
				protected.Use(authMiddleware.RequireAuth)
				protected.Get("/me", authHandler.Me)
			})
		})

		v.Route("/users/me/addresses", func(a chi.Router) {
			a.Use(authMiddleware.RequireAuth)
			a.Use(csrfGuard)
			a.Get("/", addressHandler.List)
			a.Post("/", addressHandler.Create)
			a.Route("/{addressID}", func(child chi.Router) {
				child.Patch("/", addressHandler.Update)
				child.Delete("/", addressHandler.Delete)
			})
		})

		v.Route("/carts", func(c chi.Router) {
			c.Use(authMiddleware.Authenticate)
			c.Use(csrfGuard)
			c.Get("/{id}", cartHandler.Get)
			c.Get("/{id}/membership", membershipHandler.Summary)
			c.With(authMiddleware.RequireAuth).Get("/active", cartHandler.GetActive)
			c.Group(func(g chi.Router) {
				g.Use(idem.Middleware)
				g.Post("/", cartHandler.Create)
				g.Post("/{id}/items", cartHandler.AddItem)
				g.Patch("/{id}/items/{itemId}", cartHandler.UpdateItem)
				g.Delete("/{id}/items/{itemId}", cartHandler.RemoveItem)
				g.With(authMiddleware.RequireAuth).Post("/merge", cartHandler.Merge)
			})
		})

		v.With(authMiddleware.RequireAuth, csrfGuard, idem.Middleware).Post("/checkout", checkoutHandler.Checkout)

		v.Group(func(authR chi.Router) {
			authR.Use(authMiddleware.RequireAuth)
			authR.Use(csrfGuard)
			authR.Get("/orders", orderHandler.List)
			authR.Get("/orders/{orderId}", orderHandler.Get)
			authR.Get("/orders/{orderId}/shipment", shipHandler.GetByOrder)
			authR.Post("/orders/{orderId}/cancel", orderHandler.Cancel)
		})

		v.Route("/admin", func(admin chi.Router) {
			admin.Use(authMiddleware.RequireAuth)
			admin.Use(requireRole(queries, "admin"))
			admin.Use(csrfGuard)

			admin.Get("/products", catalogAdmin.List)
			admin.With(auditRecorder.Middleware(audit.HTTPConfig{Action: "product.create", ResourceType: "product"})).
				Post("/products", catalogAdmin.Create)
			admin.With(auditRecorder.Middleware(audit.HTTPConfig{Action: "product.update", ResourceType: "product", ResourceIDParam: "id"})).
				Put("/products/{id}", catalogAdmin.Update)
			admin.With(auditRecorder.Middleware(audit.HTTPConfig{Action: "product.delete", ResourceType: "product", ResourceIDParam: "id"})).
				Delete("/products/{id}", catalogAdmin.Delete)

			admin.With(auditRecorder.Middleware(audit.HTTPConfig{Action: "order.status", ResourceType: "order", ResourceIDParam: "id"})).
				Patch("/orders/{id}/status", orderAdmin.PatchStatus)
			admin.With(auditRecorder.Middleware(audit.HTTPConfig{Action: "shipment.create", ResourceType: "order", ResourceIDParam: "id"})).
				Post("/orders/{id}/shipment", shipHandler.AdminCreate)
			admin.Post("/orders/{id}/shipment/refresh", shipHandler.AdminRefresh)

			admin.Get("/settings/membership", settingsHandler.Get)
			admin.With(auditRecorder.Middleware(audit.HTTPConfig{Action: "settings.membership.update", ResourceType: "settings"})).
				Put("/settings/membership", settingsHandler.Update)

			admin.Get("/content/faqs", contentAdmin.ListFaqs)
			admin.Post("/content/faqs", contentAdmin.CreateFaq)
			admin.Put("/content/faqs/{id}", contentAdmin.UpdateFaq)
			admin.Delete("/content/faqs/{id}", contentAdmin.DeleteFaq)
			admin.Get("/content/articles", contentAdmin.ListArticles)
			admin.Post("/content/articles", contentAdmin.CreateArticle)
			admin.Put("/content/articles/{id}", contentAdmin.UpdateArticle)
			admin.Delete("/content/articles/{id}", contentAdmin.DeleteArticle)

			admin.Post("/webhooks", notifyAdmin.CreateEndpoint)
			admin.Get("/webhooks", notifyAdmin.ListEndpoints)
			admin.Put("/webhooks/{id}", notifyAdmin.UpdateEndpoint)
			admin.Delete("/webhooks/{id}", notifyAdmin.DeleteEndpoint)
			admin.Get("/webhooks/{id}/deliveries", notifyAdmin.ListDeliveries)
			admin.Post("/webhook-deliveries/{deliveryId}/replay", notifyAdmin.ReplayDelivery)

			admin.Get("/audit-logs", auditHandler.List)

			admin.Get("/queue/dlq", queueAdmin.ListDLQ)
			admin.Post("/queue/dlq/replay", queueAdmin.ReplayDLQ)
			admin.Get("/queue/stats", queueAdmin.Stats)
		})

		v.Post("/webhooks/shipping/{courier}", shipWebhook.Handle)
	})

	// Webhook dispatch also runs in the worker binary; the in-process loop
	// covers single-binary deployments and is safe to run alongside it
	// because ticks are serialised through the Redis lock.
	if cfg.WebhookDeliveryEnabled && envBool("WEBHOOK_DISPATCH_IN_PROCESS", true) {
		worker := &notify.DeliveryWorker{
			Dispatcher: dispatcher,
			Locker:     locker,
			Log:        logger,
		}
		go worker.Run(context.Background())
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr(),
		Handler: r,
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		errCh <- srv.ListenAndServe()
	}()
	health.SetReady(true)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case <-shutdownCtx.Done():
		// Fail readiness first so load balancers drain before the listener
		// stops accepting.
		health.SetReady(false)
		logger.Info().Msg("shutdown signal received, draining")
		drainCtx, cancel := context.WithTimeout(context.Background(), envDurationMillis("SHUTDOWN_GRACE_MS", 15000))
		defer cancel()
		if err := srv.Shutdown(drainCtx); err != nil {
			logger.Error().Err(err).Msg("graceful shutdown incomplete")
		}
	}
}

func allowedOrigins(cfg *config.Config) []string {
	if len(cfg.CORSAllowedOrigins) == 0 {
		return []string{"*"}
	}
	return cfg.CORSAllowedOrigins
}

func requireRole(q dbgen.Querier, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if q == nil {
				common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "role validator not configured", nil)
				return
			}
			userID, ok := common.UserID(r.Context())
			if !ok {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "forbidden", nil)
				return
			}
			uid, err := cart.ToUUID(userID)
			if err != nil {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "forbidden", nil)
				return
			}
			user, err := q.GetUserByID(r.Context(), uid)
			if err != nil {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "forbidden", nil)
				return
			}
			if !slices.Contains(user.Roles, role) {
				common.JSONError(w, http.StatusForbidden, "FORBIDDEN", "insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type readinessChecker struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func (c readinessChecker) PingDB(ctx context.Context, timeout time.Duration) error {
	if c.db == nil {
		return errors.New("db not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.db.Ping(ctx)
}

func (c readinessChecker) PingRedis(ctx context.Context, timeout time.Duration) error {
	if c.redis == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return c.redis.Ping(ctx).Err()
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/block", pprof.Handler("block"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	mux.Handle("/threadcreate", pprof.Handler("threadcreate"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
