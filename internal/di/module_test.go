package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/app"
	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/dashboard"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	"github.com/polkiloo/orderdesk/internal/storage/memory"
	"github.com/polkiloo/orderdesk/internal/storage/postgres"
	"github.com/polkiloo/orderdesk/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		JWTSecret:            "secret",
		SnapshotPollInterval: time.Second,
		ShutdownTimeout:      time.Millisecond,
		DateLocale:           "en-US",
		DateTimezone:         "UTC",
		LogLevel:             "info",
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	admins := test.NewAdminRepositoryStub()
	store := memory.New()

	var (
		facade *app.AdminFacade
		board  *dashboard.Dashboard
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.AdminRepository(admins)),
			fx.Replace(repository.DocumentStore(store)),
			fx.Replace(repository.HealthChecker(test.HealthCheckerStub{})),
		),
		fx.Populate(&facade, &board),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil || board == nil {
		t.Fatal("expected admin facade and dashboard instances")
	}
	if board.View().Phase != dashboard.PhaseLoading {
		t.Fatalf("expected dashboard to wait for start, got %+v", board.View())
	}
}
