package dashboard

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/config"
	"github.com/polkiloo/orderdesk/internal/domain/repository"
	"github.com/polkiloo/orderdesk/internal/projection"
)

// Module wires the date formatter and the dashboard component. Lifecycle hooks are
// registered by the application module.
var Module = fx.Provide(
	newDateFormat,
	newDashboard,
)

func newDateFormat(cfg *config.Config, logger *slog.Logger) (projection.DateFormat, error) {
	f, err := projection.NewDateFormatter(cfg.DateLocale, cfg.DateTimezone)
	if err != nil {
		return nil, err
	}
	logger.Info("order dates formatted",
		slog.String("requested_locale", cfg.DateLocale),
		slog.String("locale", f.Locale().String()),
		slog.String("time_zone", cfg.DateTimezone),
	)
	return f, nil
}

type dashboardParams struct {
	fx.In

	Store  repository.DocumentStore
	Dates  projection.DateFormat
	Logger *slog.Logger
}

func newDashboard(p dashboardParams) *Dashboard {
	return New(p.Store, p.Dates, p.Logger)
}
