package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vskc23/user-profile-integration/internal/handlers"
	"github.com/vskc23/user-profile-integration/internal/imagehost"
	"github.com/vskc23/user-profile-integration/internal/logger"
	"github.com/vskc23/user-profile-integration/internal/repository"
	"github.com/vskc23/user-profile-integration/internal/server"
	"github.com/vskc23/user-profile-integration/internal/service"

	"github.com/spf13/viper"
)

func main() {
	// init logger
	log := logger.Get(logger.InfoLevel)

	// load config.yml + env overrides
	if err := loadConfig(); err != nil {
		log.Fatalw("error reading config", "err", err)
	}

	// open DB
	db, err := openDB(log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Fatalw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(db)
	host := imagehost.NewClient(imagehost.Config{
		ClientID:  viper.GetString("imagehost.client_id"),
		UploadURL: viper.GetString("imagehost.upload_url"),
		DeleteURL: viper.GetString("imagehost.delete_url"),
		Timeout:   viper.GetDuration("imagehost.timeout"),
	}, log)
	services := service.NewService(repos, host, service.AuthConfig{
		SigningKey: viper.GetString("auth.signing_key"),
		TokenTTL:   viper.GetDuration("auth.token_ttl"),
	})
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, viper.GetString("port"), apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)
}

// loadConfig reads configs/config.yml and lets environment variables
// override any key (e.g. IMAGEHOST_CLIENT_ID, AUTH_SIGNING_KEY).
func loadConfig() error {
	viper.AddConfigPath("configs") // configs/config.yml
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	return viper.ReadInConfig()
}

// openDB initializes the SQLite database using configuration.
func openDB(log *logger.Logger) (*sql.DB, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		log.Infow("db.path not set in config; using default file", "default", "app.db")
		dbPath = "app.db"
	}
	return repository.InitDB(dbPath)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if port == "" {
			port = "8080"
		}
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}
