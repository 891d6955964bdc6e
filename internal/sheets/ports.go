package sheets

import (
	"context"

	"financeiro/internal/export"
)

// Ports for outbound report destinations.
type (
	// TableWriter replaces the content of one tab per table.
	TableWriter interface {
		Name() string
		Write(ctx context.Context, tables []export.Table) error
	}
)
