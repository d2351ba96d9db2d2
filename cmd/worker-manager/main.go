// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recruiting-workers/internal/cache"
	awsclients "recruiting-workers/internal/common/aws"
	"recruiting-workers/internal/common/camunda"
	"recruiting-workers/internal/common/config"
	"recruiting-workers/internal/common/database"
	"recruiting-workers/internal/common/logger"
	"recruiting-workers/internal/common/observability"
	"recruiting-workers/internal/storage"
	"recruiting-workers/pkg/registry"

	acl "recruiting-workers/internal/workers/candidates/assemble-candidate-list"
	dc "recruiting-workers/internal/workers/candidates/delete-candidate"
	lso "recruiting-workers/internal/workers/candidates/list-stack-options"
	nsc "recruiting-workers/internal/workers/candidates/notify-status-change"
	pcf "recruiting-workers/internal/workers/candidates/parse-candidate-filters"
	sc "recruiting-workers/internal/workers/candidates/score-candidate"
	ucs "recruiting-workers/internal/workers/candidates/update-candidate-status"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// pingOrClose closes a freshly opened client whose ping fails.
func pingOrClose(ctx context.Context, ping func(context.Context) error, closeFn func() error) error {
	if err := ping(ctx); err != nil {
		_ = closeFn()
		return err
	}
	return nil
}

func workerTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if ms := cfg.Workers[taskType].Timeout; ms > 0 {
		return config.GetDuration(ms)
	}
	return fallback
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name, log)

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pingOrClose(ctx, pg.Ping, pg.Close)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return pingOrClose(ctx, rdb.Ping, rdb.Close)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	store := storage.NewCandidateStore(pg.GetDB(), log)
	snapshots := cache.NewSnapshotCache(rdb.GetClient(), cfg.Ranking.SnapshotDuration())

	sesClient, err := awsclients.NewSESClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("failed to load AWS config for SES", zap.Error(err))
	}
	snsClient, err := awsclients.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		zapLog.Fatal("failed to load AWS config for SNS", zap.Error(err))
	}

	// --- Register workers ---
	zc := zeebe.GetClient()
	var workers []worker.JobWorker
	var started []string
	register := func(taskType string, handler worker.JobHandler) {
		if w := camunda.StartWorker(zc, taskType, cfg.Workers[taskType], handler, obs, zapLog); w != nil {
			workers = append(workers, w)
			started = append(started, taskType)
		}
	}

	if cfg.Workers[pcf.TaskType].Enabled {
		handler := pcf.NewHandler(
			&pcf.Config{
				DefaultSortBy: pcf.LoadConfig().DefaultSortBy,
				Timeout:       workerTimeout(cfg, pcf.TaskType, 5*time.Second),
			},
			log,
		)
		register(pcf.TaskType, handler.Handle)
	}

	if cfg.Workers[sc.TaskType].Enabled {
		handler := sc.NewHandler(
			&sc.Config{
				CacheTTL: 10 * time.Minute,
				Timeout:  workerTimeout(cfg, sc.TaskType, 5*time.Second),
			},
			store, rdb.GetClient(), log,
		)
		register(sc.TaskType, handler.Handle)
	}

	if cfg.Workers[acl.TaskType].Enabled {
		handler := acl.NewHandler(
			&acl.Config{
				MaxItems:          cfg.Ranking.MaxItems,
				CollationLanguage: cfg.Ranking.CollationTag(),
				Timeout:           workerTimeout(cfg, acl.TaskType, 15*time.Second),
			},
			store, snapshots, obs, log,
		)
		register(acl.TaskType, handler.Handle)
	}

	if cfg.Workers[ucs.TaskType].Enabled {
		handler := ucs.NewHandler(
			&ucs.Config{Timeout: workerTimeout(cfg, ucs.TaskType, 10*time.Second)},
			store, snapshots, log,
		)
		register(ucs.TaskType, handler.Handle)
	}

	if cfg.Workers[dc.TaskType].Enabled {
		handler := dc.NewHandler(
			&dc.Config{Timeout: workerTimeout(cfg, dc.TaskType, 10*time.Second)},
			store, snapshots, log,
		)
		register(dc.TaskType, handler.Handle)
	}

	if cfg.Workers[lso.TaskType].Enabled {
		handler := lso.NewHandler(
			&lso.Config{Timeout: workerTimeout(cfg, lso.TaskType, 10*time.Second)},
			store, log,
		)
		register(lso.TaskType, handler.Handle)
	}

	if cfg.Workers[nsc.TaskType].Enabled {
		handler := nsc.NewHandler(
			&nsc.Config{
				EmailEnabled:   cfg.Notifications.Email.Enabled,
				SMSEnabled:     cfg.Notifications.SMS.Enabled,
				FromEmail:      cfg.Notifications.Email.FromEmail,
				RecruiterEmail: cfg.Notifications.RecruiterEmail,
				RecruiterPhone: cfg.Notifications.RecruiterPhone,
				Timeout:        workerTimeout(cfg, nsc.TaskType, 15*time.Second),
			},
			sesClient, snsClient, log,
		)
		register(nsc.TaskType, handler.Handle)
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))
	checkRegistry(cfg.App.RegistryPath, started, zapLog)

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		checkCtx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{"postgres": "ok", "redis": "ok", "zeebe": "ok"}
		code := http.StatusOK
		if err := pg.Ping(checkCtx); err != nil {
			checks["postgres"], code = err.Error(), http.StatusServiceUnavailable
		}
		if err := rdb.Ping(checkCtx); err != nil {
			checks["redis"], code = err.Error(), http.StatusServiceUnavailable
		}
		if err := zeebe.HealthCheck(checkCtx); err != nil {
			checks["zeebe"], code = err.Error(), http.StatusServiceUnavailable
		}
		writeStatus(w, code, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Server.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

// checkRegistry warns about started workers the activity registry does not
// list as ready.
func checkRegistry(path string, taskTypes []string, log *zap.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry unavailable", zap.String("path", path), zap.Error(err))
		return
	}
	if err := reg.Validate(); err != nil {
		log.Warn("activity registry invalid", zap.String("path", path), zap.Error(err))
	}
	if missing := reg.Missing(taskTypes...); len(missing) > 0 {
		log.Warn("workers not marked ready in activity registry", zap.Strings("taskTypes", missing))
	}
}

func writeStatus(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
