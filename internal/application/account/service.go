package account

import (
	"context"

	"go.uber.org/zap"
)

type Service interface {
	// Delete resolves the caller's identity from their bearer token and
	// deletes the account.
	Delete(ctx context.Context, bearer string) error
}

type identityStore interface {
	UserFromToken(ctx context.Context, bearer string) (string, error)
	DeleteUser(ctx context.Context, userID string) error
}

type service struct {
	backend identityStore
	log     *zap.Logger
}

func NewService(backend identityStore, log *zap.Logger) Service {
	return &service{backend: backend, log: log}
}

func (s *service) Delete(ctx context.Context, bearer string) error {
	userID, err := s.backend.UserFromToken(ctx, bearer)
	if err != nil {
		return err
	}
	if err := s.backend.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.log.Info("account deleted", zap.String("user_id", userID))
	return nil
}
