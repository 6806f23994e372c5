package create_notification

import (
	"net/http"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/models"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
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
	// Парсинг request body
	var req models.NotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	notification, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("Invalid notification request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	scheduled, err := h.scheduler.Schedule(r.Context(), notification)
	if err != nil {
		if handlers.RespondSchedulerError(w, err) {
			h.logger.Warn("Notification %s was not scheduled: %v", notification.Identifier, err)
			return
		}

		h.logger.Error("Failed to schedule notification %s: %v", notification.Identifier, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Scheduled notification %s via API", scheduled.Identifier)

	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainNotification(scheduled))
}
