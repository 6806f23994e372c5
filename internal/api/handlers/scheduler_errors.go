package handlers

import (
	"errors"
	"net/http"

	schedulerSvc "github.com/m04kA/SMC-NotificationScheduler/internal/service/scheduler"
)

const (
	msgCapacityExceeded = "превышен лимит запланированных уведомлений"
	msgDispatchFailed   = "система доставки отклонила запрос"
	msgNotScheduled     = "уведомление не найдено"
)

// RespondSchedulerError отображает ошибку планировщика в HTTP статус.
// Возвращает false, если ошибка не относится к известным и ответ не отправлен.
func RespondSchedulerError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, schedulerSvc.ErrCapacityExceeded):
		RespondConflict(w, msgCapacityExceeded)
	case errors.Is(err, schedulerSvc.ErrInvalidTrigger),
		errors.Is(err, schedulerSvc.ErrInvalidContent),
		errors.Is(err, schedulerSvc.ErrInvalidGroup):
		RespondBadRequest(w, err.Error())
	case errors.Is(err, schedulerSvc.ErrDispatchAuthority):
		RespondBadGateway(w, msgDispatchFailed)
	case errors.Is(err, schedulerSvc.ErrNotScheduled):
		RespondNotFound(w, msgNotScheduled)
	default:
		return false
	}
	return true
}
