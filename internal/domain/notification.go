package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-NotificationScheduler/pkg/ptr"
)

// DefaultTriggerDelay сдвиг триггера по умолчанию относительно текущего момента
const DefaultTriggerDelay = time.Hour

// UserInfo пользовательские данные уведомления
type UserInfo map[string]interface{}

// Value реализует driver.Valuer для записи в БД
func (u UserInfo) Value() (driver.Value, error) {
	if u == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(u)
}

// Scan реализует sql.Scanner для чтения из БД
func (u *UserInfo) Scan(value interface{}) error {
	if value == nil {
		*u = make(UserInfo)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan UserInfo: expected []byte, got %T", value)
	}

	return json.Unmarshal(bytes, u)
}

// Content содержимое уведомления
type Content struct {
	Title              string
	Body               string
	Badge              *int
	Sound              Sound
	UserInfo           UserInfo
	ThreadIdentifier   string
	CategoryIdentifier string
}

// Clone возвращает копию содержимого, не разделяющую badge и user info с оригиналом
func (c Content) Clone() Content {
	clone := c
	clone.Badge = ptr.Clone(c.Badge)
	if c.UserInfo != nil {
		clone.UserInfo = make(UserInfo, len(c.UserInfo))
		for k, v := range c.UserInfo {
			clone.UserInfo[k] = v
		}
	}
	return clone
}

// Notification планируемое уведомление
type Notification struct {
	Identifier string
	Content
	Trigger Trigger

	// Заполняются только для доставленных уведомлений
	DeliveryDate *time.Time
	Delivered    bool

	scheduled atomic.Bool
}

// NewNotification создает уведомление.
// Пустой identifier заменяется на UUID, nil trigger — на дату через час без повторения.
func NewNotification(identifier, body string, trigger Trigger) *Notification {
	if identifier == "" {
		identifier = uuid.New().String()
	}
	if trigger == nil {
		trigger = NewDateTrigger(time.Now().Add(DefaultTriggerDelay), RepeatNone)
	}

	return &Notification{
		Identifier: identifier,
		Content: Content{
			Body:     body,
			Sound:    DefaultSound(),
			UserInfo: make(UserInfo),
		},
		Trigger: trigger,
	}
}

// Scheduled показывает, находится ли уведомление в реестре планировщика
func (n *Notification) Scheduled() bool {
	return n.scheduled.Load()
}

// MarkScheduled и MarkUnscheduled вызываются только планировщиком
func (n *Notification) MarkScheduled() {
	n.scheduled.Store(true)
}

func (n *Notification) MarkUnscheduled() {
	n.scheduled.Store(false)
}

// Snapshot возвращает независимую копию уведомления вместе с признаком Scheduled
func (n *Notification) Snapshot() *Notification {
	snapshot := &Notification{
		Identifier:   n.Identifier,
		Content:      n.Content.Clone(),
		Trigger:      n.Trigger,
		DeliveryDate: ptr.Clone(n.DeliveryDate),
		Delivered:    n.Delivered,
	}
	snapshot.scheduled.Store(n.Scheduled())
	return snapshot
}

// SetUserInfo устанавливает значение пользовательских данных
func (n *Notification) SetUserInfo(key string, value interface{}) {
	if n.UserInfo == nil {
		n.UserInfo = make(UserInfo)
	}
	n.UserInfo[key] = value
}

// RemoveUserInfo удаляет значение пользовательских данных
func (n *Notification) RemoveUserInfo(key string) {
	delete(n.UserInfo, key)
}

// Request формирует запрос для передачи во внешнюю систему доставки
func (n *Notification) Request() Request {
	return Request{
		Identifier: n.Identifier,
		Content:    n.Content.Clone(),
		Trigger:    n.Trigger,
	}
}

// Request запрос на доставку уведомления, как его хранит внешняя система доставки
type Request struct {
	Identifier string
	Content    Content
	Trigger    Trigger
}

// Notification восстанавливает уведомление из запроса
func (r Request) Notification() *Notification {
	return &Notification{
		Identifier: r.Identifier,
		Content:    r.Content.Clone(),
		Trigger:    r.Trigger,
	}
}

// DeliveredNotification уведомление, уже доставленное внешней системой
type DeliveredNotification struct {
	Date    time.Time
	Request Request
}

// Notification возвращает уведомление с заполненной датой доставки
func (d DeliveredNotification) Notification() *Notification {
	notification := d.Request.Notification()
	date := d.Date
	notification.DeliveryDate = &date
	notification.Delivered = true
	return notification
}
