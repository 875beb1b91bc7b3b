// Package generator defines interfaces and orchestration for turning a
// category table into generated source, icon files and published rows.
package generator

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/amenitygen/internal/domain"
	"github.com/heartmarshall/amenitygen/internal/icons"
)

// CategoryRepo stores published generations.
// Implemented by category.Repo.
type CategoryRepo interface {
	CreateGeneration(ctx context.Context, g domain.Generation) (domain.Generation, error)
	InsertCategories(ctx context.Context, generationID uuid.UUID, cats []domain.Category) (int, error)
}

// TxManager runs fn in a transaction carried by ctx.
// Implemented by postgres.TxManager.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// IconDownloader fetches collected icons into a directory.
// Implemented by icons.Downloader.
type IconDownloader interface {
	DownloadAll(ctx context.Context, found map[string]string, dir string, overwrite bool) (icons.Result, error)
}
