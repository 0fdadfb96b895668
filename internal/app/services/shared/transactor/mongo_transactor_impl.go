package transactor

import (
	"context"
	"errors"
	"ptmd-service/internal/app/contracts"
	"ptmd-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoTransactor struct {
	Client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) contracts.Transactor {
	return &mongoTransactor{Client: client}
}

func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.Client.StartSession()
	if err != nil {
		return exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionContext mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessionContext)
	})
	if err != nil {
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) {
			return customErr
		}
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
