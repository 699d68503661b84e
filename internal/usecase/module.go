package usecase

import (
	"go.uber.org/fx"

	"github.com/polkiloo/orderdesk/internal/dashboard"
)

// Module provides operator use cases to the fx container.
var Module = fx.Provide(
	func(d *dashboard.Dashboard) OrderBoard { return d },
	NewAuthUseCase,
	NewOrderUseCase,
)
