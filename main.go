package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	auth "Whirligig/internal/auth"
	blade "Whirligig/internal/blade"
	autobalance "Whirligig/internal/calc/autobalance"
	batch "Whirligig/internal/calc/batch"
	metrics "Whirligig/internal/calc/metrics"
	report "Whirligig/internal/calc/report"
	config "Whirligig/internal/config"
	contour "Whirligig/internal/contour"
	laser "Whirligig/internal/export/laser"
	template "Whirligig/internal/export/template"
	logging "Whirligig/internal/logging"
)

var wg sync.WaitGroup

func CORS(mux http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, cfg config.Config, log *zap.Logger) {
	cache := metrics.NewCache(cfg.CacheSize)
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	authEnv := &auth.Authenv{
		JWTkey:       cfg.TokenKey,
		Login:        cfg.AdminLogin,
		PasswordHash: cfg.AdminPasswordHash,
		Secure:       cfg.TLS(),
		Log:          log,
	}

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "cache": cache.Stats()})
	}).Methods("GET")

	if cfg.AuthEnabled() {
		api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
		api.HandleFunc("/logout", authEnv.LogoutHandler).Methods("POST")
	}

	bladeH := &blade.Handler{}
	metricsH := &metrics.Handler{Cache: cache, Log: log}
	contourH := &contour.Handler{}
	balanceH := &autobalance.Handler{}

	api.HandleFunc("/presets/{style}", bladeH.Preset).Methods("GET")
	api.HandleFunc("/blade/tip-style/{style}", bladeH.Switch).Methods("POST")
	api.HandleFunc("/blade/metrics", metricsH.Calc).Methods("POST")
	api.HandleFunc("/blade/contour", contourH.Calc).Methods("POST")
	api.HandleFunc("/blade/autobalance", balanceH.Balance).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	if cfg.AuthEnabled() {
		secureApi.Use(authEnv.AuthMiddleware)
	} else {
		log.Warn("TOKEN_KEY or ADMIN_PASSWORD_HASH not set; /api/user is open")
	}

	batchH := &batch.Handler{Cache: cache, Log: log}
	svgH := &laser.Handler{Cache: cache, Log: log}
	pngH := &template.Handler{Cache: cache, Log: log}
	reportH := &report.Handler{Cache: cache, Log: log}

	secureApi.HandleFunc("/batch/json", batchH.JSON).Methods("POST")
	secureApi.HandleFunc("/batch/xlsx", batchH.Sheet).Methods("POST")
	secureApi.HandleFunc("/export/svg", svgH.SVG).Methods("POST")
	secureApi.HandleFunc("/export/png", pngH.PNG).Methods("POST")
	secureApi.HandleFunc("/export/pdf", reportH.Generate).Methods("POST")
}

func NewHandler(cfg config.Config, log *zap.Logger) http.Handler {
	router := mux.NewRouter()
	HandleList(router, cfg, log)
	return logging.Middleware(log)(CORS(router))
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewHandler(cfg, log),
	}

	log.Info("starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	wg.Wait()
	log.Info("server stopped")
}
