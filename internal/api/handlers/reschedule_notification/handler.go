package reschedule_notification

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/models"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
	msgIdentifierMismatch = "идентификатор в теле запроса не совпадает с идентификатором в пути"
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
	identifier := mux.Vars(r)["id"]

	var req models.NotificationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Identifier != "" && req.Identifier != identifier {
		handlers.RespondBadRequest(w, msgIdentifierMismatch)
		return
	}
	req.Identifier = identifier

	notification, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("Invalid notification request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	// Перепланировать можно только уведомление из реестра
	rescheduled, err := h.scheduler.RescheduleExisting(r.Context(), notification)
	if err != nil {
		if handlers.RespondSchedulerError(w, err) {
			h.logger.Warn("Notification %s was not rescheduled: %v", identifier, err)
			return
		}

		h.logger.Error("Failed to reschedule notification %s: %v", identifier, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Rescheduled notification %s via API", identifier)

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainNotification(rescheduled))
}
