package delivered

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

func deliveredFixture(trigger domain.Trigger) domain.DeliveredNotification {
	badge := 3
	return domain.DeliveredNotification{
		Date: time.Date(2026, 10, 19, 10, 30, 0, 0, time.UTC),
		Request: domain.Request{
			Identifier: "reminder",
			Content: domain.Content{
				Title:              "Title",
				Body:               "Body",
				Badge:              &badge,
				Sound:              domain.NamedSound("bell.caf"),
				UserInfo:           domain.UserInfo{"chat_id": float64(42)},
				ThreadIdentifier:   "thread",
				CategoryIdentifier: "category",
			},
			Trigger: trigger,
		},
	}
}

func TestBuildInsert(t *testing.T) {
	query, args, err := buildInsert(deliveredFixture(domain.NewIntervalTrigger(120, true)))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO delivered_notifications (identifier,title,body,badge,sound,user_info,thread_identifier,category_identifier,trigger,delivered_at) VALUES"))
	assert.Contains(t, query, "$10")
	require.Len(t, args, len(columns))
	assert.Equal(t, "reminder", args[0])
	assert.Equal(t, sql.NullInt64{Int64: 3, Valid: true}, args[3])
	assert.IsType(t, "", args[8])
}

func TestBuildInsert_NilTrigger(t *testing.T) {
	d := deliveredFixture(nil)
	d.Request.Content.Badge = nil

	_, args, err := buildInsert(d)
	require.NoError(t, err)

	assert.Nil(t, args[8])
	assert.Equal(t, sql.NullInt64{}, args[3])
}

func TestBuildList(t *testing.T) {
	query, args, err := buildList()
	require.NoError(t, err)

	assert.Equal(t, "SELECT identifier, title, body, badge, sound, user_info, thread_identifier, category_identifier, trigger, delivered_at FROM delivered_notifications ORDER BY delivered_at DESC, id DESC", query)
	assert.Empty(t, args)
}

func TestBuildDeleteByIdentifiers(t *testing.T) {
	query, args, err := buildDeleteByIdentifiers([]string{"a", "b"})
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM delivered_notifications WHERE identifier = ANY($1)", query)
	assert.Len(t, args, 1)
}

func TestBuildTrim(t *testing.T) {
	query, args, err := buildTrim(50)
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM delivered_notifications WHERE id NOT IN (SELECT id FROM delivered_notifications ORDER BY delivered_at DESC, id DESC LIMIT 50)", query)
	assert.Empty(t, args)
}

func TestRow_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		trigger domain.Trigger
	}{
		{name: "interval", trigger: domain.NewIntervalTrigger(120, true)},
		{name: "date", trigger: domain.NewDateTrigger(time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC), domain.RepeatDay)},
		{name: "no trigger", trigger: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := deliveredFixture(tt.trigger)

			rec, err := newRow(original)
			require.NoError(t, err)

			restored, err := rec.toDomain()
			require.NoError(t, err)

			assert.Equal(t, original.Date, restored.Date)
			assert.Equal(t, original.Request.Identifier, restored.Request.Identifier)
			assert.Equal(t, original.Request.Content, restored.Request.Content)
			assert.True(t, domain.TriggersEqual(original.Request.Trigger, restored.Request.Trigger))
		})
	}
}

func TestRow_ToDomainInvalidSound(t *testing.T) {
	rec := &row{Identifier: "x", Sound: []byte("not json")}

	_, err := rec.toDomain()
	assert.ErrorIs(t, err, ErrScanRow)
}
