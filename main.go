package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"admindash/internal/auth"
	"admindash/internal/cache"
	"admindash/internal/config"
	"admindash/internal/handlers"
	"admindash/internal/logging"
	"admindash/internal/middleware"
	"admindash/internal/repository"
	"admindash/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	loadedEnv := []string{}
	if os.Getenv("DISABLE_DOTENV") == "" {
		loadedEnv = loadDotEnv()
	}
	logging.Init()
	for _, p := range loadedEnv {
		slog.Info("loaded env file", "path", p)
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) < 32 {
		slog.Error("JWT_SECRET missing or too short",
			"hint", "generate with: openssl rand -base64 32 (minimum 32 characters)")
		os.Exit(1)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	configMgr, err := config.NewManager(configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err, "path", configPath)
		os.Exit(1)
	}
	slog.Info("loaded dashboard config", "path", configPath)

	trustProxy := false
	switch os.Getenv("TRUST_PROXY") {
	case "1", "true", "TRUE", "True":
		trustProxy = true
	}

	ctx := context.Background()

	db, err := config.ConnectMongo(ctx, config.NewMongoConfig())
	if err != nil {
		slog.Error("failed to connect to document store", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewMongoUserRepository(db)
	contentRepo := repository.NewMongoContentRepository(db)
	analyticsRepo := repository.NewMongoAnalyticsRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to create user indexes", "error", err)
		os.Exit(1)
	}
	if err := analyticsRepo.EnsureIndexes(ctx); err != nil {
		slog.Error("failed to create analytics indexes", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	redisOpts, redisErr := redisOptionsFromAddr(os.Getenv("REDIS_ADDR"))
	if redisErr != nil {
		slog.Warn("invalid REDIS_ADDR; redis disabled", "error", redisErr)
	} else {
		redisClient = redis.NewClient(redisOpts)
		pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			slog.Warn("redis not reachable; overview cache and rate limiting disabled",
				"addr", redisOpts.Addr, "error", err)
			redisClient = nil
		}
		cancel()
	}

	var cacheImpl cache.Cache
	if redisClient != nil {
		cacheImpl = cache.NewRedisCache(redisClient)
	} else {
		cacheImpl = cache.NewNoOpCache()
	}

	tokenTTL := time.Duration(configMgr.Get().Auth.TokenTTLMinutes) * time.Minute
	tokenManager := auth.NewTokenManager([]byte(jwtSecret), tokenTTL)

	apiServer := handlers.API{
		Auth:      service.NewAuthService(userRepo, analyticsRepo, tokenManager),
		Users:     service.NewUsersService(userRepo, configMgr),
		Content:   service.NewContentService(contentRepo, userRepo),
		Analytics: service.NewAnalyticsService(analyticsRepo, userRepo, cacheImpl, configMgr),
		Tokens:    tokenManager,
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.CORS())
	r.Use(middleware.AccessLog(middleware.AccessLogOptions{TrustProxy: trustProxy}))
	r.Use(middleware.RateLimit(redisClient, middleware.RateLimitOptions{TrustProxy: trustProxy}))
	apiServer.Routes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("starting http server", "addr", server.Addr,
		"readTimeout", server.ReadTimeout,
		"writeTimeout", server.WriteTimeout)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}

func loadDotEnv() []string {
	// Go does not automatically load .env files.
	// Allow explicit path via DOTENV_PATH, otherwise search upward.
	if p := strings.TrimSpace(os.Getenv("DOTENV_PATH")); p != "" {
		if _, err := os.Stat(p); err == nil {
			if err := godotenv.Load(p); err == nil {
				return []string{p}
			}
		}
		return nil
	}

	candidates := []string{
		".env.local",
		".env",
	}

	var loaded []string
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	for dir := wd; ; {
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			if err := godotenv.Load(p); err == nil {
				loaded = append(loaded, p)
			}
		}
		if len(loaded) > 0 {
			return loaded
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return loaded
}

func redisOptionsFromAddr(redisAddr string) (*redis.Options, error) {
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	// Redis URL form (redis://[:password@]host:port[/db]).
	if strings.Contains(redisAddr, "://") {
		if opts, err := redis.ParseURL(redisAddr); err == nil {
			return opts, nil
		}
		parsed, err := url.Parse(redisAddr)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_ADDR: %w", err)
		}
		if parsed.Host == "" {
			return nil, fmt.Errorf("REDIS_ADDR missing host: %q", redisAddr)
		}
		return &redis.Options{Addr: parsed.Host}, nil
	}

	opts := &redis.Options{Addr: redisAddr}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		opts.Password = redisPassword
	}
	return opts, nil
}
