package notification_test

import (
	"context"
	"testing"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/notification"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestBroadcast_PublishesSystemNotice(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	var got []events.Event
	bus.Subscribe(func(e events.Event) { got = append(got, e) })

	svc := notification.NewService(bus, zap.NewNop())

	err := svc.Broadcast(context.Background(), notification.LevelWarning, "maintenance window at 02:00 UTC")

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, events.KindSystemNotification, got[0].Kind)

	notice := got[0].Payload.(events.NoticePayload)
	assert.Equal(t, notification.LevelWarning, notice.Level)
	assert.Equal(t, "maintenance window at 02:00 UTC", notice.Message)
}

func TestBroadcast_RejectsInvalidInput(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	var got []events.Event
	bus.Subscribe(func(e events.Event) { got = append(got, e) })

	svc := notification.NewService(bus, zap.NewNop())

	assert.Error(t, svc.Broadcast(context.Background(), "critical", "unknown level"))
	assert.Error(t, svc.Broadcast(context.Background(), notification.LevelInfo, "   "))
	assert.Empty(t, got)
}
