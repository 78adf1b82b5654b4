package push

import (
	"context"
	"fmt"

	"github.com/doodlemate-companion/internal/domain"
	"github.com/doodlemate-companion/internal/infrastructure/apns"
	"github.com/doodlemate-companion/internal/pkg/id"
	"github.com/doodlemate-companion/internal/pkg/validate"
	"go.uber.org/zap"
)

type Service interface {
	// Dispatch sends the notification to every distinct device token
	// registered for the target user and reports the per-token gateway status.
	Dispatch(ctx context.Context, req domain.PushRequest) (*domain.PushResult, error)
}

type tokenLister interface {
	DeviceTokens(ctx context.Context, userID string) ([]string, error)
}

type gateway interface {
	Push(ctx context.Context, deviceToken string, n apns.Notification) (int, error)
}

type service struct {
	tokens  tokenLister
	gateway gateway
	log     *zap.Logger
}

// NewService builds the dispatch service. A nil gateway means the push
// signing configuration is absent; Dispatch then fails with domain.ErrConfig.
func NewService(tokens tokenLister, gw gateway, log *zap.Logger) Service {
	return &service{tokens: tokens, gateway: gw, log: log}
}

func (s *service) Dispatch(ctx context.Context, req domain.PushRequest) (*domain.PushResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%v: %w", err, domain.ErrBadRequest)
	}
	if s.gateway == nil {
		return nil, fmt.Errorf("push gateway not configured: %w", domain.ErrConfig)
	}

	tokens, err := s.tokens.DeviceTokens(ctx, req.TargetUserID)
	if err != nil {
		return nil, err
	}
	distinct := dedupe(tokens)
	if len(distinct) == 0 {
		return nil, fmt.Errorf("no registered device tokens for %s: %w", req.TargetUserID, domain.ErrNotFound)
	}

	dispatchID := id.New()
	results := make(map[string]int, len(distinct))
	for _, token := range distinct {
		status, err := s.gateway.Push(ctx, token, apns.Notification{
			Title:   req.Title,
			Body:    req.Body,
			Payload: req.Payload,
		})
		if err != nil {
			// Per-token failures are isolated; the rest still go out.
			s.log.Warn("push send failed",
				zap.String("dispatch_id", dispatchID),
				zap.String("device_token", token),
				zap.Error(err))
			status = 0
		}
		results[token] = status
	}

	s.log.Info("push dispatched",
		zap.String("dispatch_id", dispatchID),
		zap.String("target_user_id", req.TargetUserID),
		zap.Int("tokens", len(results)))

	return &domain.PushResult{DispatchID: dispatchID, Tokens: results}, nil
}

// dedupe collapses duplicate tokens, preserving first-seen order.
func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
