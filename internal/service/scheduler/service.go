package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-NotificationScheduler/internal/domain"
)

const (
	opSchedule      = "schedule"
	opScheduleGroup = "schedule_group"
	opReschedule    = "reschedule"
	opCancel        = "cancel"
	opCancelGroup   = "cancel_group"
	opCancelAll     = "cancel_all"
	opReconcile     = "reconcile"
)

// Service реестр запланированных уведомлений с контролем лимита.
// Каждая операция выполняется целиком под одной блокировкой, включая вызовы системы доставки,
// поэтому проверка лимита и вставка в реестр атомарны.
type Service struct {
	authority DispatchAuthority
	settings  Settings
	logger    Logger
	metrics   Metrics

	mu       sync.Mutex
	registry map[string]*domain.Notification // identifier -> notification
	order    []string                        // порядок вставки для Notifications()
	groups   map[string][]string             // group identifier -> member identifiers
}

// NewService создает новый экземпляр планировщика
func NewService(authority DispatchAuthority, settings Settings, logger Logger, metrics Metrics) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Service{
		authority: authority,
		settings:  settings.withDefaults(),
		logger:    logger,
		metrics:   metrics,
		registry:  make(map[string]*domain.Notification),
		groups:    make(map[string][]string),
	}
}

// Settings возвращает действующие параметры планировщика
func (s *Service) Settings() Settings {
	return s.settings
}

// Schedule планирует одно уведомление.
// При успехе возвращает тот же экземпляр с Scheduled() == true.
func (s *Service) Schedule(ctx context.Context, n *domain.Notification) (result *domain.Notification, err error) {
	if n == nil {
		return nil, fmt.Errorf("%w: notification is nil", ErrInvalidContent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opSchedule, err) }()

	trigger, err := s.prepare(n)
	if err != nil {
		s.logger.Warn("Rejected notification %s: %v", n.Identifier, err)
		return nil, err
	}

	// Повторное планирование живого идентификатора занимает тот же слот
	if _, live := s.registry[n.Identifier]; !live && !s.hasCapacity(ctx, 1) {
		s.logger.Warn("Rejected notification %s: %d of %d slots used", n.Identifier, len(s.registry), s.settings.MaximumAllowedNotifications)
		return nil, ErrCapacityExceeded
	}

	if err := s.submit(ctx, n, trigger); err != nil {
		s.logger.Error("Failed to submit notification %s: %v", n.Identifier, err)
		return nil, fmt.Errorf("%w: Schedule - submit %s: %v", ErrDispatchAuthority, n.Identifier, err)
	}

	s.insert(n)
	s.logger.Info("Scheduled notification %s (%s trigger)", n.Identifier, trigger.Kind())

	return n, nil
}

// ScheduleGroup планирует группу по принципу "все или ничего".
// Лимит проверяется сразу для всей группы; при сбое отправки уже отправленные участники отзываются.
func (s *Service) ScheduleGroup(ctx context.Context, group *domain.NotificationGroup) (result *domain.NotificationGroup, err error) {
	if group == nil || len(group.Notifications) == 0 {
		return nil, fmt.Errorf("%w: group is empty", ErrInvalidGroup)
	}
	for _, n := range group.Notifications {
		if n == nil {
			return nil, fmt.Errorf("%w: group %s contains nil notification", ErrInvalidGroup, group.Identifier)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opScheduleGroup, err) }()

	triggers := make([]domain.Trigger, len(group.Notifications))
	for i, n := range group.Notifications {
		trigger, err := s.prepare(n)
		if err != nil {
			s.logger.Warn("Rejected group %s: member %s: %v", group.Identifier, n.Identifier, err)
			return nil, fmt.Errorf("ScheduleGroup - member %s: %w", n.Identifier, err)
		}
		triggers[i] = trigger
	}

	identifiers := memberIdentifiers(group)
	needed := 0
	for _, id := range identifiers {
		if _, live := s.registry[id]; !live {
			needed++
		}
	}

	if !s.hasCapacity(ctx, needed) {
		s.logger.Warn("Rejected group %s of %d notifications: %d of %d slots used",
			group.Identifier, group.Count(), len(s.registry), s.settings.MaximumAllowedNotifications)
		return nil, ErrCapacityExceeded
	}

	submitted := make([]string, 0, len(group.Notifications))
	for i, n := range group.Notifications {
		if err := s.submit(ctx, n, triggers[i]); err != nil {
			s.logger.Error("Failed to submit member %s of group %s: %v", n.Identifier, group.Identifier, err)
			s.rollback(ctx, group.Identifier, submitted)
			return nil, fmt.Errorf("%w: ScheduleGroup - submit %s: %v", ErrDispatchAuthority, n.Identifier, err)
		}
		submitted = append(submitted, n.Identifier)
	}

	for i, n := range group.Notifications {
		n.Trigger = triggers[i]
		s.insert(n)
	}
	s.groups[group.Identifier] = mergeIdentifiers(s.groups[group.Identifier], identifiers)

	s.logger.Info("Scheduled group %s (%d notifications)", group.Identifier, group.Count())

	return group, nil
}

// Reschedule повторно отправляет уведомление под тем же идентификатором.
// Прежняя отправка отзывается до новой: если новая не удалась, уведомление остается незапланированным.
func (s *Service) Reschedule(ctx context.Context, n *domain.Notification) (result *domain.Notification, err error) {
	if n == nil {
		return nil, fmt.Errorf("%w: notification is nil", ErrInvalidContent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opReschedule, err) }()

	return s.reschedule(ctx, n)
}

// RescheduleExisting перепланирует уведомление, только если идентификатор есть в реестре.
// Проверка и перепланирование выполняются под одной блокировкой.
func (s *Service) RescheduleExisting(ctx context.Context, n *domain.Notification) (result *domain.Notification, err error) {
	if n == nil {
		return nil, fmt.Errorf("%w: notification is nil", ErrInvalidContent)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opReschedule, err) }()

	if _, live := s.registry[n.Identifier]; !live {
		return nil, fmt.Errorf("%w: %s", ErrNotScheduled, n.Identifier)
	}

	return s.reschedule(ctx, n)
}

// Cancel отменяет уведомление
func (s *Service) Cancel(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return nil
	}
	return s.CancelByIdentifier(ctx, n.Identifier)
}

// CancelByIdentifier отменяет все записи с указанным идентификатором.
// Неизвестный идентификатор не является ошибкой.
func (s *Service) CancelByIdentifier(ctx context.Context, identifier string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opCancel, err) }()

	// Реестр хранит только последнюю запись на идентификатор, поэтому сверяемся с системой доставки
	if _, live := s.registry[identifier]; !live {
		pending, err := s.authority.ListPending(ctx)
		if err != nil {
			return fmt.Errorf("%w: CancelByIdentifier - list pending: %v", ErrDispatchAuthority, err)
		}
		if !containsIdentifier(pending, identifier) {
			return nil
		}
	}

	if err := s.authority.Withdraw(ctx, identifier); err != nil {
		s.logger.Error("Failed to withdraw notification %s: %v", identifier, err)
		return fmt.Errorf("%w: CancelByIdentifier - withdraw %s: %v", ErrDispatchAuthority, identifier, err)
	}

	s.remove(identifier)
	s.logger.Info("Cancelled notification %s", identifier)

	return nil
}

// CancelGroup отменяет все уведомления группы
func (s *Service) CancelGroup(ctx context.Context, group *domain.NotificationGroup) error {
	if group == nil {
		return nil
	}
	return s.CancelGroupByIdentifier(ctx, group.Identifier)
}

// CancelGroupByIdentifier отменяет ровно тех участников, которые записаны за группой
func (s *Service) CancelGroupByIdentifier(ctx context.Context, identifier string) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opCancelGroup, err) }()

	members, ok := s.groups[identifier]
	if !ok {
		return nil
	}

	if err := s.authority.WithdrawMany(ctx, members); err != nil {
		s.logger.Error("Failed to withdraw group %s: %v", identifier, err)
		return fmt.Errorf("%w: CancelGroupByIdentifier - withdraw %s: %v", ErrDispatchAuthority, identifier, err)
	}

	for _, id := range members {
		s.remove(id)
	}
	delete(s.groups, identifier)

	s.logger.Info("Cancelled group %s (%d notifications)", identifier, len(members))

	return nil
}

// CancelAll отзывает все записи и очищает реестр
func (s *Service) CancelAll(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opCancelAll, err) }()

	identifiers := make([]string, 0, len(s.registry))
	seen := make(map[string]struct{}, len(s.registry))
	for _, id := range s.order {
		identifiers = append(identifiers, id)
		seen[id] = struct{}{}
	}

	pending, err := s.authority.ListPending(ctx)
	if err != nil {
		s.logger.Warn("Failed to list pending notifications, cancelling registry only: %v", err)
	}
	for _, request := range pending {
		if _, ok := seen[request.Identifier]; !ok {
			identifiers = append(identifiers, request.Identifier)
			seen[request.Identifier] = struct{}{}
		}
	}

	if len(identifiers) > 0 {
		if err := s.authority.WithdrawMany(ctx, identifiers); err != nil {
			s.logger.Error("Failed to withdraw all notifications: %v", err)
			return fmt.Errorf("%w: CancelAll - withdraw: %v", ErrDispatchAuthority, err)
		}
	}

	for _, n := range s.registry {
		n.MarkUnscheduled()
	}
	s.registry = make(map[string]*domain.Notification)
	s.order = nil
	s.groups = make(map[string][]string)

	s.logger.Info("Cancelled all notifications (%d identifiers)", len(identifiers))

	return nil
}

// Reconcile удаляет из реестра записи, которых система доставки уже не хранит
// (например, сработавшие одноразовые уведомления). Возвращает число удаленных записей.
func (s *Service) Reconcile(ctx context.Context) (pruned int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.observe(opReconcile, err) }()

	pending, err := s.authority.ListPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: Reconcile - list pending: %v", ErrDispatchAuthority, err)
	}

	return s.prune(pending), nil
}

// Notification возвращает снимок уведомления из реестра или nil.
// Снимок не меняется последующими операциями планировщика.
func (s *Service) Notification(identifier string) *domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.registry[identifier]
	if !ok {
		return nil
	}
	return n.Snapshot()
}

// Group возвращает группу или nil, если она не планировалась или уже полностью отменена
func (s *Service) Group(identifier string) *domain.NotificationGroup {
	s.mu.Lock()
	defer s.mu.Unlock()

	members, ok := s.groups[identifier]
	if !ok {
		return nil
	}

	notifications := make([]*domain.Notification, 0, len(members))
	for _, id := range members {
		if n, ok := s.registry[id]; ok {
			notifications = append(notifications, n.Snapshot())
		}
	}
	if len(notifications) == 0 {
		return nil
	}

	return &domain.NotificationGroup{Identifier: identifier, Notifications: notifications}
}

// Notifications возвращает снимки запланированных уведомлений в порядке планирования
func (s *Service) Notifications() []*domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*domain.Notification, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.registry[id].Snapshot())
	}
	return result
}

// ScheduledCount количество записей в реестре, по нему работает контроль лимита
func (s *Service) ScheduledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.registry)
}

// reschedule отзывает прежнюю отправку и отправляет уведомление заново. Вызывается под s.mu.
func (s *Service) reschedule(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	trigger, err := s.prepare(n)
	if err != nil {
		s.logger.Warn("Rejected reschedule of %s: %v", n.Identifier, err)
		return nil, err
	}

	if err := s.authority.Withdraw(ctx, n.Identifier); err != nil {
		s.logger.Error("Failed to withdraw notification %s: %v", n.Identifier, err)
		return nil, fmt.Errorf("%w: Reschedule - withdraw %s: %v", ErrDispatchAuthority, n.Identifier, err)
	}
	s.removeEntry(n.Identifier)

	if !s.hasCapacity(ctx, 1) {
		s.dropMembership(n.Identifier)
		n.MarkUnscheduled()
		s.logger.Warn("Rejected reschedule of %s: %d of %d slots used", n.Identifier, len(s.registry), s.settings.MaximumAllowedNotifications)
		return nil, ErrCapacityExceeded
	}

	if err := s.submit(ctx, n, trigger); err != nil {
		s.dropMembership(n.Identifier)
		n.MarkUnscheduled()
		s.logger.Error("Failed to resubmit notification %s, it is no longer scheduled: %v", n.Identifier, err)
		return nil, fmt.Errorf("%w: Reschedule - submit %s: %v", ErrDispatchAuthority, n.Identifier, err)
	}

	s.insert(n)
	s.logger.Info("Rescheduled notification %s (%s trigger)", n.Identifier, trigger.Kind())

	return n, nil
}

// prepare проверяет содержимое и нормализует триггер
func (s *Service) prepare(n *domain.Notification) (domain.Trigger, error) {
	if err := validateContent(n, s.settings.AllowSilent); err != nil {
		return nil, err
	}
	return normalizeTrigger(n.Trigger, s.settings.MinimumInterval)
}

// submit отправляет запрос с нормализованным триггером; триггер уведомления обновляется только при успехе
func (s *Service) submit(ctx context.Context, n *domain.Notification, trigger domain.Trigger) error {
	request := n.Request()
	request.Trigger = trigger

	if err := s.authority.Submit(ctx, request); err != nil {
		return err
	}

	n.Trigger = trigger
	return nil
}

// hasCapacity проверяет, помещаются ли needed новых записей.
// При нехватке места реестр сверяется с системой доставки.
func (s *Service) hasCapacity(ctx context.Context, needed int) bool {
	if len(s.registry)+needed <= s.settings.MaximumAllowedNotifications {
		return true
	}

	pending, err := s.authority.ListPending(ctx)
	if err != nil {
		s.logger.Warn("Failed to reconcile registry before admission: %v", err)
		return false
	}
	if pruned := s.prune(pending); pruned > 0 {
		s.logger.Info("Pruned %d delivered notifications from registry", pruned)
	}

	return len(s.registry)+needed <= s.settings.MaximumAllowedNotifications
}

// rollback отзывает уже отправленных участников неудавшейся группы.
// Withdraw снимает все записи с идентификатором, поэтому уведомления, жившие в реестре
// до вызова, отправляются заново и остаются запланированными.
func (s *Service) rollback(ctx context.Context, group string, identifiers []string) {
	if len(identifiers) == 0 {
		return
	}

	if err := s.authority.WithdrawMany(ctx, identifiers); err != nil {
		s.logger.Error("Failed to roll back group %s (%d notifications): %v", group, len(identifiers), err)
		return
	}

	restored := 0
	for _, id := range mergeIdentifiers(nil, identifiers) {
		prior, live := s.registry[id]
		if !live {
			continue
		}
		if err := s.authority.Submit(ctx, prior.Request()); err != nil {
			s.logger.Error("Failed to restore notification %s after rollback of group %s: %v", id, group, err)
			s.remove(id)
			continue
		}
		restored++
	}

	s.logger.Warn("Rolled back group %s (%d notifications, %d restored)", group, len(identifiers), restored)
}

// prune удаляет записи реестра, отсутствующие в pending
func (s *Service) prune(pending []domain.Request) int {
	live := make(map[string]struct{}, len(pending))
	for _, request := range pending {
		live[request.Identifier] = struct{}{}
	}

	var stale []string
	for _, id := range s.order {
		if _, ok := live[id]; !ok {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		s.remove(id)
	}

	return len(stale)
}

// insert добавляет уведомление в реестр, вытесненный экземпляр помечается незапланированным
func (s *Service) insert(n *domain.Notification) {
	if existing, ok := s.registry[n.Identifier]; ok {
		if existing != n {
			existing.MarkUnscheduled()
		}
	} else {
		s.order = append(s.order, n.Identifier)
	}

	s.registry[n.Identifier] = n
	n.MarkScheduled()
}

// remove удаляет запись из реестра и из всех групп
func (s *Service) remove(identifier string) {
	s.removeEntry(identifier)
	s.dropMembership(identifier)
}

// removeEntry удаляет запись только из реестра, членство в группах сохраняется
func (s *Service) removeEntry(identifier string) {
	n, ok := s.registry[identifier]
	if !ok {
		return
	}

	n.MarkUnscheduled()
	delete(s.registry, identifier)
	s.order = removeIdentifier(s.order, identifier)
}

// dropMembership исключает идентификатор из групп, пустые группы удаляются
func (s *Service) dropMembership(identifier string) {
	for group, members := range s.groups {
		members = removeIdentifier(members, identifier)
		if len(members) == 0 {
			delete(s.groups, group)
			continue
		}
		s.groups[group] = members
	}
}

func (s *Service) observe(operation string, err error) {
	s.metrics.SetScheduledCount(len(s.registry))
	s.metrics.ObserveOperation(operation, resultOf(err))
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrCapacityExceeded):
		return "capacity_exceeded"
	case errors.Is(err, ErrInvalidTrigger), errors.Is(err, ErrInvalidContent), errors.Is(err, ErrInvalidGroup):
		return "invalid"
	case errors.Is(err, ErrDispatchAuthority):
		return "dispatch_error"
	case errors.Is(err, ErrNotScheduled):
		return "not_found"
	}
	return "error"
}

// memberIdentifiers уникальные идентификаторы участников в порядке группы
func memberIdentifiers(group *domain.NotificationGroup) []string {
	return mergeIdentifiers(nil, identifiersOf(group.Notifications))
}

func identifiersOf(notifications []*domain.Notification) []string {
	ids := make([]string, len(notifications))
	for i, n := range notifications {
		ids[i] = n.Identifier
	}
	return ids
}

// mergeIdentifiers добавляет в base отсутствующие в нем идентификаторы, сохраняя порядок
func mergeIdentifiers(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	result := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			result = append(result, id)
		}
	}
	return result
}

// removeIdentifier возвращает новый срез, исходный не изменяется
func removeIdentifier(list []string, identifier string) []string {
	result := make([]string, 0, len(list))
	for _, id := range list {
		if id != identifier {
			result = append(result, id)
		}
	}
	return result
}

func containsIdentifier(requests []domain.Request, identifier string) bool {
	for _, request := range requests {
		if request.Identifier == identifier {
			return true
		}
	}
	return false
}

type noopMetrics struct{}

func (noopMetrics) SetScheduledCount(int)           {}
func (noopMetrics) ObserveOperation(string, string) {}
