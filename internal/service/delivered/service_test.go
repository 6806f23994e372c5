package delivered

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-NotificationScheduler/internal/dispatch/memory"
	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type failingStore struct{}

func (failingStore) ListDelivered(context.Context) ([]domain.DeliveredNotification, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) RemoveDelivered(context.Context, []string) (int, error) {
	return 0, errors.New("connection refused")
}

func (failingStore) RemoveAllDelivered(context.Context) (int, error) {
	return 0, errors.New("connection refused")
}

func deliver(t *testing.T, authority *memory.Authority, at time.Time, identifiers ...string) {
	t.Helper()
	authority.SetClock(func() time.Time { return at })
	for _, id := range identifiers {
		n := domain.NewNotification(id, "body "+id, domain.NewIntervalTrigger(60, false))
		require.NoError(t, authority.Submit(context.Background(), n.Request()))
		require.Equal(t, 1, authority.Deliver(id))
	}
}

func TestService_List_NewestFirst(t *testing.T) {
	authority := memory.New(0)
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	deliver(t, authority, base, "first")
	deliver(t, authority, base.Add(time.Hour), "second")

	svc := NewService(authority, testLogger{})
	notifications, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, notifications, 2)
	assert.Equal(t, "second", notifications[0].Identifier)
	assert.Equal(t, "first", notifications[1].Identifier)
	for _, n := range notifications {
		assert.True(t, n.Delivered)
		require.NotNil(t, n.DeliveryDate)
	}
	assert.Equal(t, base.Add(time.Hour), *notifications[0].DeliveryDate)
}

func TestService_Get(t *testing.T) {
	authority := memory.New(0)
	deliver(t, authority, time.Now(), "a")
	svc := NewService(authority, testLogger{})

	n, err := svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "body a", n.Body)

	_, err = svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestService_Remove(t *testing.T) {
	authority := memory.New(0)
	deliver(t, authority, time.Now(), "a", "b", "c")
	svc := NewService(authority, testLogger{})

	removed, err := svc.Remove(context.Background(), []string{"a", "c"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	notifications, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "b", notifications[0].Identifier)

	_, err = svc.Remove(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RemoveAll(t *testing.T) {
	authority := memory.New(0)
	deliver(t, authority, time.Now(), "a", "b")
	svc := NewService(authority, testLogger{})

	removed, err := svc.RemoveAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	notifications, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestService_StoreErrors(t *testing.T) {
	svc := NewService(failingStore{}, testLogger{})

	_, err := svc.List(context.Background())
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Get(context.Background(), "a")
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Remove(context.Background(), []string{"a"})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.RemoveAll(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
