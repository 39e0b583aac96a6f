package activitylog

import (
	"context"

	"maison-be/internal/logger"

	"go.uber.org/zap"
)

// Service records and lists audit entries. Record is fire-and-forget:
// an audit failure is logged and swallowed so it can never fail the
// operation being audited.
type Service interface {
	Record(ctx context.Context, userID int64, action, detail string)
	List(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, userID int64, action, detail string) {
	e := &Entry{
		UserID: userID,
		Action: action,
		Detail: detail,
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		logger.FromCtx(ctx).Warn("failed to record activity",
			zap.String("action", action),
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Entry, error) {
	return s.repo.List(ctx, filter)
}
