package get_delivered

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/models"
	deliveredSvc "github.com/m04kA/SMC-NotificationScheduler/internal/service/delivered"
)

const (
	msgNotificationNotFound = "доставленное уведомление не найдено"
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
	identifier := mux.Vars(r)["id"]

	notification, err := h.service.Get(r.Context(), identifier)
	if err != nil {
		if errors.Is(err, deliveredSvc.ErrNotificationNotFound) {
			handlers.RespondNotFound(w, msgNotificationNotFound)
			return
		}

		h.logger.Error("Failed to get delivered notification %s: %v", identifier, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainNotification(notification))
}
