package delivered

import (
	"context"
	"fmt"
	"sort"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

// Service чтение и очистка списка доставленных уведомлений
type Service struct {
	store  Store
	logger Logger
}

// NewService создает новый экземпляр сервиса доставленных уведомлений
func NewService(store Store, logger Logger) *Service {
	return &Service{
		store:  store,
		logger: logger,
	}
}

// List возвращает доставленные уведомления, новые первыми
func (s *Service) List(ctx context.Context) ([]*domain.Notification, error) {
	records, err := s.store.ListDelivered(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: List - store error: %v", ErrInternal, err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	notifications := make([]*domain.Notification, 0, len(records))
	for _, record := range records {
		notifications = append(notifications, record.Notification())
	}

	return notifications, nil
}

// Get возвращает последнюю доставку уведомления с указанным идентификатором
func (s *Service) Get(ctx context.Context, identifier string) (*domain.Notification, error) {
	notifications, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("Get - %w", err)
	}

	for _, n := range notifications {
		if n.Identifier == identifier {
			return n, nil
		}
	}

	return nil, ErrNotificationNotFound
}

// Remove удаляет доставленные уведомления с указанными идентификаторами
func (s *Service) Remove(ctx context.Context, identifiers []string) (int, error) {
	if len(identifiers) == 0 {
		return 0, fmt.Errorf("%w: identifiers cannot be empty", ErrInvalidInput)
	}

	removed, err := s.store.RemoveDelivered(ctx, identifiers)
	if err != nil {
		return 0, fmt.Errorf("%w: Remove - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Removed %d delivered notifications", removed)
	return removed, nil
}

// RemoveAll очищает список доставленных уведомлений
func (s *Service) RemoveAll(ctx context.Context) (int, error) {
	removed, err := s.store.RemoveAllDelivered(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: RemoveAll - store error: %v", ErrInternal, err)
	}

	s.logger.Info("Removed all delivered notifications (%d)", removed)
	return removed, nil
}
