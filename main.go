package main

import (
	auth "Flexure/internal/auth"
	batch "Flexure/internal/calc/batch"
	deflection "Flexure/internal/calc/deflection"
	export "Flexure/internal/calc/export"
	importer "Flexure/internal/calc/importer"
	report "Flexure/internal/calc/report"
	config "Flexure/internal/config"
	repo "Flexure/internal/repo"
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"remote":   r.RemoteAddr,
			"duration": time.Since(start),
		}).Debug("request")
	})
}

// logUser records which account ran a tool. It sits behind AuthMiddleware.
func logUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := auth.UserID(r.Context())
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"login":   auth.UserLogin(r.Context()),
			"path":    r.URL.Path,
		}).Info("tool request")
		next.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg *config.Config, userRepo repo.Repository) {
	authEnv := &auth.Authenv{JWTkey: []byte(cfg.TokenKey), Repo: userRepo, Insecure: !cfg.TLS()}
	limiter := auth.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	mux.Use(logRequests)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware, logUser)

	deflectionH := &deflection.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{}
	exportH := &export.Handler{}
	reportH := &report.Handler{}

	secureApi.HandleFunc("/tools/deflection/calc", deflectionH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/deflection/batch", batchH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/deflection/import", importH.Import).Methods("POST")
	secureApi.HandleFunc("/tools/deflection/xlsx", exportH.XLSX).Methods("POST")
	secureApi.HandleFunc("/tools/deflection/report", reportH.Generate).Methods("POST")

	authFileServer := http.FileServer(http.Dir(filepath.Join(cfg.StaticDir, "auth")))
	mux.PathPrefix("/auth/").
		Handler(authEnv.RedirectIfLoggedIn(http.StripPrefix("/auth", authFileServer)))
	mainFileServer := http.FileServer(http.Dir(filepath.Join(cfg.StaticDir, "main")))
	mux.PathPrefix("/").
		Handler(mainFileServer)
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("configuration")
	}
	logrus.SetLevel(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := auth.InitDB(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	userRepo := repo.NewPostgresUserDB(db)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("schema")
	}

	mux := mux.NewRouter()
	HandleList(mux, cfg, userRepo)
	handler := CORS(mux)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		logrus.WithFields(logrus.Fields{"addr": cfg.Addr, "tls": cfg.TLS()}).Info("starting server")
		var err error
		if cfg.TLS() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	logrus.Info("shutdown signal received, closing active connections")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Fatal("server shutdown failed")
	}
	logrus.Info("server stopped")

	wg.Wait()
}
