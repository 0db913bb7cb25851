package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	domainAppointment "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/infra/lock"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memory"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	"github.com/BruksfildServices01/barber-booking/internal/seed"
	"github.com/BruksfildServices01/barber-booking/internal/snapshot"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

func main() {
	cfg := config.Load()

	log := newLogger(cfg.LogLevel)
	slog.SetDefault(log)

	if !timezone.IsValid(cfg.Timezone) {
		log.Warn("unknown timezone, using default",
			slog.String("timezone", cfg.Timezone),
			slog.String("default", timezone.DefaultTimezone),
		)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	deps, gdb, err := buildStore(cfg, log)
	if err != nil {
		return err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	var sink audit.Sink = audit.NewSlogSink(log)
	if gdb != nil {
		sink = audit.New(gdb)
	}
	deps.Audit = audit.NewDispatcher(sink, log)
	defer deps.Audit.Close()

	// --------------------------------------------------
	// Slot lock
	// --------------------------------------------------
	locker, closeLocker, err := buildLocker(cfg, log)
	if err != nil {
		return err
	}
	defer closeLocker()
	deps.Locker = locker

	deps.Tokens = auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	deps.Log = log

	if cfg.S3Enabled() {
		deps.Uploader = snapshot.NewUploader(snapshot.NewS3Client(cfg), cfg.S3Bucket, cfg.S3Prefix)
	}

	// --------------------------------------------------
	// Seed
	// --------------------------------------------------
	if cfg.SeedDemoData {
		n, err := seed.EnsureCatalog(context.Background(), deps.Barbershops)
		if err != nil {
			return err
		}
		if n > 0 {
			log.Info("seeded demo barbershops", slog.Int("count", n))
		}
	}

	// --------------------------------------------------
	// HTTP
	// --------------------------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, cfg, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running",
			slog.String("addr", cfg.Addr()),
			slog.String("store", cfg.StoreDriver),
		)
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

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// buildStore wires the repositories for the configured driver. The returned
// *gorm.DB is nil for the memory store.
func buildStore(cfg *config.Config, log *slog.Logger) (routes.Deps, *gorm.DB, error) {
	if cfg.StoreDriver == config.DriverMemory {
		st := memory.New()
		if cfg.DataFile != "" {
			opened, err := memory.Open(cfg.DataFile)
			if err != nil {
				return routes.Deps{}, nil, err
			}
			st = opened
		}
		return routes.Deps{
			Barbershops:  st,
			Appointments: st,
			Users:        st,
			Snapshots:    st,
		}, nil, nil
	}

	gdb, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return routes.Deps{}, nil, err
	}

	return routes.Deps{
		Barbershops:  infraRepo.NewBarbershopGormRepository(gdb),
		Appointments: infraRepo.NewAppointmentGormRepository(gdb),
		Users:        infraRepo.NewUserGormRepository(gdb),
		Snapshots:    infraRepo.NewSnapshotGormRepository(gdb),
		DB:           gdb,
	}, gdb, nil
}

func buildLocker(cfg *config.Config, log *slog.Logger) (domainAppointment.SlotLocker, func(), error) {
	if cfg.RedisAddr == "" {
		return lock.NewLocalLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	log.Info("using redis slot lock", slog.String("addr", cfg.RedisAddr))
	return lock.NewRedisLocker(client, cfg.LockTTL, log), func() { _ = client.Close() }, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
