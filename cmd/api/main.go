package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/PratikDhanave/interest-registration-service/internal/config"
	"github.com/PratikDhanave/interest-registration-service/internal/handlers"
	"github.com/PratikDhanave/interest-registration-service/internal/httpserver"
	"github.com/PratikDhanave/interest-registration-service/internal/logger"
	"github.com/PratikDhanave/interest-registration-service/internal/metrics"
	"github.com/PratikDhanave/interest-registration-service/internal/sheets"
	"github.com/PratikDhanave/interest-registration-service/internal/store"
	"github.com/PratikDhanave/interest-registration-service/internal/telemetry"
)

// mirror is the spreadsheet copier plus the drain used at shutdown.
type mirror interface {
	handlers.Mirror
	Wait(ctx context.Context) error
}

// main boots the service: config → logger → tracing → DB → sheet mirror → HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg.Log.Env, cfg.Log.Level)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Log.Env)
	if err != nil {
		lg.Fatal("init tracer", zap.Error(err))
	}

	st, err := openStore(ctx, cfg.DB)
	if err != nil {
		lg.Fatal("open store", zap.String("driver", cfg.DB.Driver), zap.Error(err))
	}
	defer st.Close()

	m := metrics.New()

	mir, err := newMirror(ctx, cfg.Sheets, lg, m)
	if err != nil {
		lg.Fatal("create sheet mirror", zap.Error(err))
	}

	router := httpserver.NewRouter(cfg, httpserver.Deps{
		Store:   st,
		Mirror:  mir,
		Metrics: m,
		Logger:  lg,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: router,
	}

	go func() {
		lg.Info("server started", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DB.Driver), zap.Bool("sheets", cfg.SheetsEnabled()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	lg.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("http shutdown", zap.Error(err))
	}
	if err := mir.Wait(shutdownCtx); err != nil {
		lg.Warn("sheet appends still pending at shutdown", zap.Error(err))
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		lg.Error("tracer shutdown", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.DB) (store.RegistrationStore, error) {
	if cfg.Driver == config.DriverSQLite {
		return store.NewSQLiteStore(ctx, cfg.SQLitePath)
	}

	pg, err := store.NewPostgresStore(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}
	// Ensure the table exists so a fresh database is enough to start.
	if err := pg.EnsureSchema(ctx); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}

func newMirror(ctx context.Context, cfg config.Sheets, lg *zap.Logger, m *metrics.Metrics) (mirror, error) {
	if cfg.SheetID == "" {
		lg.Info("GOOGLE_SHEET_ID not set, spreadsheet mirror disabled")
		return sheets.Noop{}, nil
	}

	ts := sheets.NewTokenSource(sheets.ConnectorConfig{
		Host:           cfg.ConnectorsHost,
		ReplIdentity:   cfg.ReplIdentity,
		WebReplRenewal: cfg.WebReplRenewal,
		DefaultTTL:     cfg.DefaultTokenTTL,
	})
	client, err := sheets.NewClient(ctx, cfg.SheetID, ts, lg)
	if err != nil {
		return nil, err
	}
	return sheets.NewSyncer(client, cfg.Timeout, lg, m), nil
}
