package cancel_all_notifications

import (
	"net/http"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
)

type Handler struct {
	scheduler Scheduler
	logger    Logger
}

func NewHandler(scheduler Scheduler, logger Logger) *Handler {
	return &Handler{
		scheduler: scheduler,
		logger:    logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.scheduler.CancelAll(r.Context()); err != nil {
		if handlers.RespondSchedulerError(w, err) {
			h.logger.Warn("Notifications were not cancelled: %v", err)
			return
		}

		h.logger.Error("Failed to cancel all notifications: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
