package interfaces

import (
	"context"

	"github.com/k-fujiwara/pbrimport/pkg/domain/model"
)

// ImportUseCase defines the batch import operation
type ImportUseCase interface {
	// Run discovers material archives, imports every slug, and reports
	// the outcome. Per-slug failures are counted, not returned.
	Run(ctx context.Context) (*model.ImportResult, error)
}
