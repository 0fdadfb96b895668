package auth

import (
	"context"
	"ptmd-service/internal/app/models"
	"ptmd-service/internal/pkg/dto/requests"
	"ptmd-service/internal/pkg/dto/responses"
)

type AuthUsecase interface {
	RegisterMedico(ctx context.Context, request *requests.RegisterMedico) (*responses.RegisterMedico, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, session *models.Session) error
	ChangePassword(ctx context.Context, session *models.Session, request *requests.ChangePassword) error
	// EnsureAdminUser seeds the configured admin account at startup when it
	// does not exist yet.
	EnsureAdminUser(ctx context.Context) error
}
