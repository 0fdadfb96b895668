package users

import (
	"context"
	"ptmd-service/internal/app/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, userModel *models.User) (userID string, err error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByCPF(ctx context.Context, cpf string) (*models.User, error)
	FindByCRM(ctx context.Context, crm string) (*models.User, error)
	FindByID(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, userModel *models.User) error
}
