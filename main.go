package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"health-advisor/config"
	"health-advisor/domain"
	httpLayer "health-advisor/http"
	"health-advisor/messaging"
	"health-advisor/repository"
	"health-advisor/service"
)

var (
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	checkInput domain.RawInput
)

var rootCmd = &cobra.Command{
	Use:   "health-advisor",
	Short: "Validates self-reported health metrics and renders analysis results",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Logging.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Print advisories and the validation outcome for a set of readings",
	Long: `Runs the real-time advisories and the submit-time validation locally,
without contacting the analysis service.

Example:
  health-advisor check --height 5.9 --weight 70 --sugar-fasting 95 --sugar-post 130 --bp 120/80`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.OutOrStdout(), checkInput)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "health-advisor.yaml", "path to YAML config")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	checkCmd.Flags().StringVar(&checkInput.Height, "height", "", "height in feet")
	checkCmd.Flags().StringVar(&checkInput.Weight, "weight", "", "weight in kg")
	checkCmd.Flags().StringVar(&checkInput.SugarFasting, "sugar-fasting", "", "fasting blood sugar in mg/dL")
	checkCmd.Flags().StringVar(&checkInput.SugarPost, "sugar-post", "", "post-meal blood sugar in mg/dL")
	checkCmd.Flags().StringVar(&checkInput.BloodPressure, "bp", "", "blood pressure as systolic/diastolic")
	checkCmd.Flags().StringVar(&checkInput.ActivityLevel, "activity", "", "activity level: Low, Moderate or High")
	checkCmd.Flags().StringVar(&checkInput.FamilyHistory, "family-history", "", "family history of diabetes: Yes or No")

	rootCmd.AddCommand(serveCmd, checkCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

func runCheck(out io.Writer, raw domain.RawInput) error {
	report := service.AdviseReport(raw)
	if len(report.Advisories) == 0 {
		if report.AllClear {
			fmt.Fprintln(out, "No advisories. Your readings look good.")
		} else {
			fmt.Fprintln(out, "No advisories.")
		}
	}
	for _, advisory := range report.Advisories {
		fmt.Fprintf(out, "advisory: %s\n", advisory)
	}

	metrics, err := service.Validate(raw)
	if err != nil {
		fmt.Fprintf(out, "invalid: %s\n", service.UserMessage(err))
		return err
	}
	fmt.Fprintf(out, "valid: height %.3f m, weight %g kg, fasting %g mg/dL, post-meal %g mg/dL, bp %s mmHg, activity %s, family history %s\n",
		metrics.HeightMeters, metrics.WeightKg, metrics.SugarFastingMgDl, metrics.SugarPostMgDl,
		service.BloodPressureText(metrics), metrics.ActivityLevel, metrics.FamilyHistory)
	return nil
}

func serve(ctx context.Context) error {
	cache, closeCache, err := newCache(ctx)
	if err != nil {
		return err
	}
	defer closeCache()

	repo, closeRepo, err := newSubmissionRepository()
	if err != nil {
		return err
	}
	defer closeRepo()

	publisher, err := newPublisher()
	if err != nil {
		return err
	}
	defer publisher.Close()

	analysisClient := service.NewAnalysisClient(cfg.Analysis.BaseURL, cfg.Analysis.Timeout)
	submissionService := service.NewSubmissionService(
		analysisClient, cache, repo, publisher, cfg.Cache.TTL, logger,
	)
	healthHandler := httpLayer.NewHealthHandler(submissionService, cfg.DefaultUserID, logger)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(healthHandler, rateLimiter, logger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening",
			zap.String("addr", cfg.Server.Addr),
			zap.String("analysis", cfg.Analysis.BaseURL))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", zap.Error(err))
	}
	logger.Info("server exited")
	return nil
}

func newCache(ctx context.Context) (repository.CacheRepository, func(), error) {
	if cfg.Cache.Driver != "redis" {
		return repository.NewMemoryCache(), func() {}, nil
	}

	cache := repository.NewRedisCache(cfg.Cache.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := cache.Ping(pingCtx); err != nil {
		cache.Close()
		return nil, nil, fmt.Errorf("redis %s unreachable: %w", cfg.Cache.RedisAddr, err)
	}
	logger.Info("using redis cache", zap.String("addr", cfg.Cache.RedisAddr))
	return cache, func() { _ = cache.Close() }, nil
}

func newSubmissionRepository() (repository.SubmissionRepository, func(), error) {
	if cfg.Storage.Driver != "sqlite" {
		return repository.NewSubmissionRepositoryMemory(), func() {}, nil
	}

	repo, err := repository.NewSubmissionRepositorySQLite(cfg.Storage.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open submission store: %w", err)
	}
	logger.Info("using sqlite submission store", zap.String("path", cfg.Storage.Path))
	return repo, func() { _ = repo.Close() }, nil
}

type publisherCloser interface {
	service.EventPublisher
	Close() error
}

func newPublisher() (publisherCloser, error) {
	if cfg.Messaging.RabbitMQURL == "" {
		return messaging.NopPublisher{}, nil
	}
	return messaging.NewRabbitMQPublisher(cfg.Messaging.RabbitMQURL, cfg.Messaging.Queue, logger)
}
