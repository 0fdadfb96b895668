package admin

import (
	"context"
	"ptmd-service/internal/pkg/dto/responses"
)

type AdminUsecase interface {
	GetDashboard(ctx context.Context) (*responses.Dashboard, error)
	// BuildBackup assembles a ZIP archive with every confirmed image under
	// dataset/ plus a database.csv manifest, for retraining the model.
	BuildBackup(ctx context.Context) ([]byte, error)
}
