package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

type fakeBot struct {
	sent      []tgbotapi.Chattable
	requested []tgbotapi.Chattable
	sendErr   error
	response  *tgbotapi.APIResponse
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if b.sendErr != nil {
		return tgbotapi.Message{}, b.sendErr
	}
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requested = append(b.requested, c)
	if b.response != nil {
		return b.response, nil
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func request(userInfo domain.UserInfo) domain.Request {
	return domain.Request{
		Identifier: "reminder",
		Content: domain.Content{
			Title:    "Reminder",
			Body:     "Wash <the> car",
			Sound:    domain.DefaultSound(),
			UserInfo: userInfo,
		},
		Trigger: domain.NewIntervalTrigger(60, false),
	}
}

func TestService_Deliver_Text(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot, 42)

	require.NoError(t, svc.Deliver(context.Background(), request(nil)))

	require.Len(t, bot.sent, 1)
	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "<b>Reminder</b>\nWash &lt;the&gt; car", msg.Text)
	assert.Equal(t, domain.ParseModeHTML, msg.ParseMode)
}

func TestService_Deliver_ChatIDFromUserInfo(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot, 0)

	require.NoError(t, svc.Deliver(context.Background(), request(domain.UserInfo{domain.UserInfoChatID: float64(100500)})))

	msg := bot.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(100500), msg.ChatID)
}

func TestService_Deliver_NoChat(t *testing.T) {
	svc := NewService(&fakeBot{}, 0)

	err := svc.Deliver(context.Background(), request(nil))

	assert.ErrorIs(t, err, ErrNoRecipient)
}

func TestService_Deliver_Photo(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot, 42)

	info := domain.UserInfo{domain.UserInfoImageURLs: []interface{}{"https://example.com/1.png"}}
	require.NoError(t, svc.Deliver(context.Background(), request(info)))

	require.Len(t, bot.sent, 1)
	photo, ok := bot.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok)
	assert.Equal(t, "<b>Reminder</b>\nWash &lt;the&gt; car", photo.Caption)
}

func TestService_Deliver_MediaGroup(t *testing.T) {
	bot := &fakeBot{}
	svc := NewService(bot, 42)

	info := domain.UserInfo{domain.UserInfoImageURLs: []string{"https://example.com/1.png", "https://example.com/2.png"}}
	require.NoError(t, svc.Deliver(context.Background(), request(info)))

	require.Len(t, bot.requested, 1)
	group, ok := bot.requested[0].(tgbotapi.MediaGroupConfig)
	require.True(t, ok)
	assert.Len(t, group.Media, 2)
}

func TestService_Deliver_MediaGroupRejected(t *testing.T) {
	bot := &fakeBot{response: &tgbotapi.APIResponse{Ok: false, Description: "Bad Request"}}
	svc := NewService(bot, 42)

	info := domain.UserInfo{domain.UserInfoImageURLs: []string{"https://example.com/1.png", "https://example.com/2.png"}}
	err := svc.Deliver(context.Background(), request(info))

	assert.ErrorIs(t, err, ErrSend)
	assert.ErrorContains(t, err, "Bad Request")
}

func TestService_Deliver_SendError(t *testing.T) {
	svc := NewService(&fakeBot{sendErr: errors.New("Forbidden: bot was blocked by the user")}, 42)

	err := svc.Deliver(context.Background(), request(nil))

	assert.ErrorIs(t, err, ErrSend)
}

func TestService_Deliver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	bot := &fakeBot{}
	err := NewService(bot, 42).Deliver(ctx, request(nil))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, bot.sent)
}

func TestService_Send_Empty(t *testing.T) {
	svc := NewService(&fakeBot{}, 42)

	err := svc.Send(&domain.TelegramMessage{ChatID: 42})

	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestService_Send_TooManyImages(t *testing.T) {
	bot := &fakeBot{}
	urls := make([]string, maxMediaGroup+1)
	for i := range urls {
		urls[i] = "https://example.com/image.png"
	}

	err := NewService(bot, 42).Send(&domain.TelegramMessage{ChatID: 42, MessageText: "x", ImageURLs: urls})

	assert.ErrorIs(t, err, ErrTooManyImages)
	assert.Empty(t, bot.requested)
}
