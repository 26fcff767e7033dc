// Command server runs the CMS REST API.
//
// @title        CMS REST API
// @version      1.0
// @description  Login, user directory, content and slot endpoints over a traversable content tree.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmsbridge/restapi/internal/api"
	"github.com/cmsbridge/restapi/internal/api/handler"
	"github.com/cmsbridge/restapi/internal/core/domain"
	"github.com/cmsbridge/restapi/internal/core/ports"
	"github.com/cmsbridge/restapi/internal/core/security"
	"github.com/cmsbridge/restapi/internal/core/service"
	"github.com/cmsbridge/restapi/internal/core/transform"
	mongostore "github.com/cmsbridge/restapi/internal/infrastructure/db/mongo"
	redisstore "github.com/cmsbridge/restapi/internal/infrastructure/db/redis"
	"github.com/cmsbridge/restapi/internal/infrastructure/http/handlers"
	"github.com/cmsbridge/restapi/internal/infrastructure/pas"
	"github.com/cmsbridge/restapi/internal/pkg/config"
	"github.com/cmsbridge/restapi/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "cms-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	// --- Stores ---
	mongoClient, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongostore.NewUserRepository(db)
	contents := mongostore.NewContentRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := contents.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("content indexes: %w", err)
	}

	// --- Authentication ---
	jwtCfg := pas.JWTConfig{
		Secret:            []byte(cfg.JWT.Secret),
		TTL:               cfg.JWT.TTL,
		CookieName:        cfg.JWT.CookieName,
		UpdateCredentials: cfg.JWT.UpdateCredentials,
	}
	folders := userFolders(users, jwtCfg, cfg.JWT.Enabled)

	// --- Block transformers ---
	transforms := transform.NewRegistry(cfg.Transform.Disabled...)
	transforms.Register(transform.ResolveUID(contents))

	loginService := service.NewLoginService(folders, redisstore.NewLoginTracker(rdb), logger.Component("login"))
	userService := service.NewUserService(users, logger.Component("users"))

	e := api.NewRouter(api.Deps{
		Log:          logger.Component("http"),
		LoginService: loginService,
		UserService:  userService,
		Contents:     contents,
		Transforms:   transforms,
		Tokens:       pas.NewJWTPlugin("", domain.DefaultUserFolderPath, jwtCfg),
		Policy:       security.DefaultPolicy(),
		Cookie: handler.CookieOptions{
			Name:   cfg.JWT.CookieName,
			TTL:    cfg.JWT.TTL,
			Secure: cfg.JWT.CookieSecure,
		},
		PublicURL:   cfg.PublicURL,
		CSRFEnabled: cfg.CSRF.Enabled,
		Readiness: handlers.NewHealthDependenciesHandler(map[string]handlers.Pinger{
			"mongodb": handlers.MongoPinger(db),
			"redis":   handlers.RedisPinger(rdb),
		}),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// userFolders returns the folder registry. The site root is registered up
// front; folders elsewhere are found on first login. Each folder gets its
// own JWT plugin when enabled.
func userFolders(users *mongostore.UserRepository, jwtCfg pas.JWTConfig, jwtEnabled bool) *pas.Registry {
	newFolder := func(path string) ports.UserFolder {
		var plugins []ports.AuthenticationPlugin
		if jwtEnabled {
			plugins = append(plugins, pas.NewJWTPlugin("", path, jwtCfg))
		}
		return pas.NewFolder(path, users, plugins...)
	}

	registry := pas.NewRegistry().WithFactory(newFolder)
	registry.Add(newFolder(domain.DefaultUserFolderPath))
	return registry
}
