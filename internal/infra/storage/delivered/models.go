package delivered

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
	"github.com/m04kA/SMC-NotificationScheduler/pkg/ptr"
)

const table = "delivered_notifications"

var columns = []string{
	"identifier",
	"title",
	"body",
	"badge",
	"sound",
	"user_info",
	"thread_identifier",
	"category_identifier",
	"trigger",
	"delivered_at",
}

// row строка таблицы delivered_notifications
type row struct {
	Identifier         string
	Title              string
	Body               string
	Badge              sql.NullInt64
	Sound              []byte
	UserInfo           domain.UserInfo
	ThreadIdentifier   string
	CategoryIdentifier string
	Trigger            []byte
	DeliveredAt        time.Time
}

func newRow(d domain.DeliveredNotification) (*row, error) {
	content := d.Request.Content

	sound, err := json.Marshal(domain.NewSoundRecord(content.Sound))
	if err != nil {
		return nil, fmt.Errorf("%w: sound: %v", ErrEncode, err)
	}

	var trigger []byte
	if record := domain.NewTriggerRecord(d.Request.Trigger); record != nil {
		if trigger, err = json.Marshal(record); err != nil {
			return nil, fmt.Errorf("%w: trigger: %v", ErrEncode, err)
		}
	}

	r := &row{
		Identifier:         d.Request.Identifier,
		Title:              content.Title,
		Body:               content.Body,
		Sound:              sound,
		UserInfo:           content.UserInfo,
		ThreadIdentifier:   content.ThreadIdentifier,
		CategoryIdentifier: content.CategoryIdentifier,
		Trigger:            trigger,
		Badge:              sql.NullInt64{Int64: int64(ptr.PtrGet(content.Badge)), Valid: content.Badge != nil},
		DeliveredAt:        d.Date.UTC(),
	}

	return r, nil
}

// values значения в порядке columns; JSONB передается строкой
func (r *row) values() []interface{} {
	var trigger interface{}
	if len(r.Trigger) > 0 {
		trigger = string(r.Trigger)
	}

	return []interface{}{
		r.Identifier,
		r.Title,
		r.Body,
		r.Badge,
		string(r.Sound),
		r.UserInfo,
		r.ThreadIdentifier,
		r.CategoryIdentifier,
		trigger,
		r.DeliveredAt,
	}
}

// targets указатели для Scan в порядке columns
func (r *row) targets() []interface{} {
	return []interface{}{
		&r.Identifier,
		&r.Title,
		&r.Body,
		&r.Badge,
		&r.Sound,
		&r.UserInfo,
		&r.ThreadIdentifier,
		&r.CategoryIdentifier,
		&r.Trigger,
		&r.DeliveredAt,
	}
}

func (r *row) toDomain() (domain.DeliveredNotification, error) {
	content := domain.Content{
		Title:              r.Title,
		Body:               r.Body,
		UserInfo:           r.UserInfo,
		ThreadIdentifier:   r.ThreadIdentifier,
		CategoryIdentifier: r.CategoryIdentifier,
	}
	if r.Badge.Valid {
		content.Badge = ptr.Ptr(int(r.Badge.Int64))
	}

	if len(r.Sound) > 0 {
		var record domain.SoundRecord
		if err := json.Unmarshal(r.Sound, &record); err != nil {
			return domain.DeliveredNotification{}, fmt.Errorf("%w: sound: %v", ErrScanRow, err)
		}
		sound, err := record.Sound()
		if err != nil {
			return domain.DeliveredNotification{}, fmt.Errorf("%w: sound: %v", ErrScanRow, err)
		}
		content.Sound = sound
	}

	var trigger domain.Trigger
	if len(r.Trigger) > 0 {
		var record domain.TriggerRecord
		if err := json.Unmarshal(r.Trigger, &record); err != nil {
			return domain.DeliveredNotification{}, fmt.Errorf("%w: trigger: %v", ErrScanRow, err)
		}
		t, err := record.Trigger()
		if err != nil {
			return domain.DeliveredNotification{}, fmt.Errorf("%w: trigger: %v", ErrScanRow, err)
		}
		trigger = t
	}

	return domain.DeliveredNotification{
		Date: r.DeliveredAt,
		Request: domain.Request{
			Identifier: r.Identifier,
			Content:    content,
			Trigger:    trigger,
		},
	}, nil
}
