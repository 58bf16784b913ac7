package notification

import (
	"context"
	"net/http"
	"strings"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/shared/apperror"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/shared/contextutil"

	"go.uber.org/zap"
)

const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

var errInvalidLevel = apperror.New(
	apperror.CodeInvalidInput,
	"level must be info, warning or error",
	http.StatusBadRequest,
)

var errEmptyMessage = apperror.New(
	apperror.CodeInvalidInput,
	"message is required",
	http.StatusBadRequest,
)

type Service interface {
	Broadcast(ctx context.Context, level, message string) error
}

type service struct {
	bus    *eventbus.Bus
	logger *zap.Logger
}

func NewService(bus *eventbus.Bus, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{bus: bus, logger: l}
}

// Broadcast publishes a system notice to every bus subscriber.
func (s *service) Broadcast(ctx context.Context, level, message string) error {
	rid := contextutil.GetRequestID(ctx)

	switch level {
	case LevelInfo, LevelWarning, LevelError:
	default:
		return errInvalidLevel
	}
	if strings.TrimSpace(message) == "" {
		return errEmptyMessage
	}

	s.bus.Publish(events.New(events.NoticePayload{
		Level:   level,
		Message: message,
	}))

	s.logger.Info("system notice broadcast",
		zap.String("request_id", rid),
		zap.String("level", level),
	)
	return nil
}
