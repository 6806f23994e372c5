package list_delivered

import (
	"net/http"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/models"
)

type Handler struct {
	service DeliveredService
	logger  Logger
}

func NewHandler(service DeliveredService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list delivered notifications: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainNotifications(notifications))
}
