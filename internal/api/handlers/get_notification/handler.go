package get_notification

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/models"
)

const (
	msgNotificationNotFound = "уведомление не найдено"
)

type Handler struct {
	scheduler Scheduler
}

func NewHandler(scheduler Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["id"]

	notification := h.scheduler.Notification(identifier)
	if notification == nil {
		handlers.RespondNotFound(w, msgNotificationNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainNotification(notification))
}
