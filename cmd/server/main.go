package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ortholink/exercise-service/internal/config"
	"github.com/ortholink/exercise-service/internal/content"
	"github.com/ortholink/exercise-service/internal/evaluator"
	"github.com/ortholink/exercise-service/internal/handlers"
	"github.com/ortholink/exercise-service/internal/repositories/postgres"
	"github.com/ortholink/exercise-service/internal/services"
	"github.com/ortholink/exercise-service/internal/session"
	"github.com/ortholink/exercise-service/internal/utils"
	"github.com/ortholink/exercise-service/internal/validator"
	"github.com/ortholink/exercise-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	var logger utils.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger = utils.NewDefaultLogger()
	} else {
		logger = utils.NewDevelopmentLogger()
	}
	slogger := utils.ToSlogLogger(logger)

	tree, err := loadContentTree(cfg)
	if err != nil {
		logger.Error("failed to load content tree", "error", err)
		os.Exit(1)
	}
	logger.Info("content tree loaded", "sections", len(tree.Sections()), "exercises", tree.Len())

	store, err := buildSessionStore(cfg)
	if err != nil {
		logger.Error("failed to initialize session store", "error", err)
		os.Exit(1)
	}

	policy, err := evaluator.ParsePolicy(cfg.NormalizationPolicy)
	if err != nil {
		logger.Error("invalid normalization policy", "error", err)
		os.Exit(1)
	}

	publisher, err := config.LoadEventConfig().CreateEventPublisher(slogger)
	if err != nil {
		logger.Error("failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()

	exerciseService := services.NewExerciseService(tree, store, evaluator.New(policy), publisher, slogger)
	sessionService := services.NewSessionService(store, publisher, exerciseService, slogger)
	progressService := services.NewProgressService(tree, store, slogger)
	authService := services.NewStubAuthService(slogger)
	speechService := services.NewSpeechService(cfg.GoogleTTSAPIKey, slogger)

	manager := handlers.NewHandlerManager(
		tree,
		authService,
		sessionService,
		exerciseService,
		progressService,
		speechService,
		validator.New(),
		logger,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	manager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// loadContentTree serves content from Postgres when DATABASE_URL is set,
// seeding the table from the embedded tree on first run. Without a database
// the embedded tree is used directly.
func loadContentTree(cfg *config.Config) (*content.Tree, error) {
	if cfg.DatabaseURL == "" {
		return content.LoadBuiltin()
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}

	repo, err := postgres.NewContentPostgreSQL(db)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		builtin, err := content.LoadBuiltin()
		if err != nil {
			return nil, err
		}
		if err := repo.Seed(ctx, builtin.Sections()); err != nil {
			return nil, err
		}
	}

	sections, err := repo.LoadSections(ctx)
	if err != nil {
		return nil, err
	}
	return content.NewTree(sections)
}

func buildSessionStore(cfg *config.Config) (session.Store, error) {
	if cfg.RedisURL == "" {
		return session.NewMemoryStore(), nil
	}

	client, err := pkg.NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}
	return session.NewRedisStore(client, cfg.SessionTTL), nil
}
