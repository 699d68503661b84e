package dashboard

import (
	"github.com/polkiloo/orderdesk/internal/domain/model"
	"github.com/polkiloo/orderdesk/internal/projection"
)

// Phase is the lifecycle state of the dashboard view.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// View is an immutable published state of the dashboard.
type View struct {
	Phase Phase
	// Err carries the failure message while Phase is PhaseError.
	Err     string
	Rows    []model.EnrichedOrder
	Version uint64
}

// Partition splits rows into pending and delivered tables.
func (v View) Partition() projection.Partitioned {
	return projection.Partition(v.Rows)
}

// Row looks up a row by order id.
func (v View) Row(id string) (model.EnrichedOrder, bool) {
	for _, row := range v.Rows {
		if row.ID == id {
			return row, true
		}
	}
	return model.EnrichedOrder{}, false
}
