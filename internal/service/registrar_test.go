package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"chatlink/internal/models"
)

func authedFixture(t *testing.T) *fixture {
	t.Helper()

	f := newFixture(t)
	require.NoError(t, f.sess.SetAuthenticated("usr-abc", "msg-token", time.Now().Add(time.Hour)))
	return f
}

func TestSubscribeToken_AnonymousNoop(t *testing.T) {
	t.Parallel()

	// Анонимная сессия: ни одного вызова к мокам.
	f := newFixture(t)
	f.svc.SubscribeToken(context.Background(), "push-client", "device-token")
}

func TestSubscribeToken_EmptyTokenNoop(t *testing.T) {
	t.Parallel()

	f := authedFixture(t)
	f.svc.SubscribeToken(context.Background(), "push-client", "")
}

func TestSubscribeToken_OK(t *testing.T) {
	t.Parallel()

	f := authedFixture(t)

	f.devices.EXPECT().
		SaveToken(gomock.Any(), models.DeviceTokenBinding{
			RecipientID: "usr-abc",
			ClientID:    "unit-notif-client",
			Token:       "device-token",
			Platform:    models.PlatformIOS,
			Pipeline:    models.PipelineAPNS,
		}).
		Return(models.OutcomeSuccess, nil)
	f.msg.EXPECT().MeNote(gomock.Any()).Return("stale-client", nil)
	f.msg.EXPECT().SetMeNote(gomock.Any(), "push-client").Return(nil)

	f.svc.SubscribeToken(context.Background(), "push-client", "device-token")
}

func TestSubscribeToken_NoteUnchangedSkipsWrite(t *testing.T) {
	t.Parallel()

	f := authedFixture(t)

	f.devices.EXPECT().SaveToken(gomock.Any(), gomock.Any()).Return(models.OutcomeSuccess, nil)
	f.msg.EXPECT().MeNote(gomock.Any()).Return("push-client", nil)
	// SetMeNote не ожидается: значение не изменилось.

	f.svc.SubscribeToken(context.Background(), "push-client", "device-token")
}

func TestSubscribeToken_LongClientIDTruncated(t *testing.T) {
	t.Parallel()

	f := authedFixture(t)
	long := strings.Repeat("x", maxTopicNoteLength+40)

	f.devices.EXPECT().SaveToken(gomock.Any(), gomock.Any()).Return(models.OutcomeSuccess, nil)
	f.msg.EXPECT().MeNote(gomock.Any()).Return("", nil)
	f.msg.EXPECT().SetMeNote(gomock.Any(), long[:maxTopicNoteLength]).Return(nil)

	f.svc.SubscribeToken(context.Background(), long, "device-token")
}

func TestSubscribeToken_RejectedSkipsNote(t *testing.T) {
	t.Parallel()

	f := authedFixture(t)

	f.devices.EXPECT().SaveToken(gomock.Any(), gomock.Any()).Return(models.OutcomeError, nil)

	f.svc.SubscribeToken(context.Background(), "push-client", "device-token")
}

func TestSubscribeToken_TransportErrorLoggedOnly(t *testing.T) {
	t.Parallel()

	f := authedFixture(t)

	f.devices.EXPECT().SaveToken(gomock.Any(), gomock.Any()).
		Return(models.OutcomeUnknown, errors.New("unavailable"))

	f.svc.SubscribeToken(context.Background(), "push-client", "device-token")
}

func TestSubscribeToken_NoteReadFailureSkipsWrite(t *testing.T) {
	t.Parallel()

	f := authedFixture(t)

	f.devices.EXPECT().SaveToken(gomock.Any(), gomock.Any()).Return(models.OutcomeSuccess, nil)
	f.msg.EXPECT().MeNote(gomock.Any()).Return("", errors.New("no me topic"))

	f.svc.SubscribeToken(context.Background(), "push-client", "device-token")
}
