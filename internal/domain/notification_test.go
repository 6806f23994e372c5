package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-NotificationScheduler/pkg/ptr"
)

func TestNewNotification_Defaults(t *testing.T) {
	before := time.Now()
	n := NewNotification("", "This is a test notification", nil)

	_, err := uuid.Parse(n.Identifier)
	require.NoError(t, err)

	trigger, ok := n.Trigger.(DateTrigger)
	require.True(t, ok)
	assert.Equal(t, RepeatNone, trigger.Repeat)
	assert.Zero(t, trigger.At.Nanosecond())
	assert.WithinDuration(t, before.Add(DefaultTriggerDelay), trigger.At, 2*time.Second)

	assert.True(t, n.Sound.IsValid())
	assert.Equal(t, DefaultSoundName, n.Sound.Name())
	assert.NotNil(t, n.UserInfo)
	assert.False(t, n.Scheduled())
}

func TestNewNotification_KeepsIdentifier(t *testing.T) {
	n := NewNotification("IDENTIFIER", "body", NewIntervalTrigger(60, false))

	assert.Equal(t, "IDENTIFIER", n.Identifier)
	assert.True(t, NewIntervalTrigger(60, false).Equal(n.Trigger))
}

func TestNotification_UserInfo(t *testing.T) {
	n := &Notification{}
	n.SetUserInfo("Key", "Value")
	n.SetUserInfo("Other", 1)
	assert.Len(t, n.UserInfo, 2)

	n.RemoveUserInfo("Other")
	assert.Equal(t, UserInfo{"Key": "Value"}, n.UserInfo)
}

func TestNotification_RequestIsDetached(t *testing.T) {
	n := NewNotification("id", "body", nil)
	n.Badge = ptr.Ptr(3)
	n.SetUserInfo("Key", "Value")

	request := n.Request()
	*n.Badge = 5
	n.SetUserInfo("Key", "Changed")

	assert.Equal(t, 3, *request.Content.Badge)
	assert.Equal(t, "Value", request.Content.UserInfo["Key"])
}

func TestDeliveredNotification_Notification(t *testing.T) {
	date := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	delivered := DeliveredNotification{
		Date: date,
		Request: Request{
			Identifier: "id",
			Content:    Content{Title: "title", Body: "body", Sound: DefaultSound()},
			Trigger:    NewIntervalTrigger(60, false),
		},
	}

	n := delivered.Notification()

	assert.True(t, n.Delivered)
	require.NotNil(t, n.DeliveryDate)
	assert.Equal(t, date, *n.DeliveryDate)
	assert.Equal(t, "title", n.Title)
	assert.False(t, n.Scheduled())
}

func TestNotificationGroup(t *testing.T) {
	group := NewNotificationGroup([]*Notification{
		NewNotification("", "#1", nil),
		NewNotification("", "#2", nil),
	}, "")

	assert.NotEmpty(t, group.Identifier)
	assert.Equal(t, 2, group.Count())

	named := NewNotificationGroup(nil, "Group")
	assert.Equal(t, "Group", named.Identifier)
	assert.Zero(t, named.Count())
}

func TestUserInfo_ValueScan(t *testing.T) {
	value, err := UserInfo{"Key": "Value"}.Value()
	require.NoError(t, err)

	var scanned UserInfo
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, UserInfo{"Key": "Value"}, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)

	assert.Error(t, scanned.Scan(42))
}
