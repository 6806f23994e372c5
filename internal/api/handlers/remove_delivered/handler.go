package remove_delivered

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	deliveredSvc "github.com/m04kA/SMC-NotificationScheduler/internal/service/delivered"
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

type RemoveDeliveredResponse struct {
	RemovedCount int `json:"removed_count"`
}

// Handle удаляет записи с идентификаторами из параметров identifier,
// без параметров очищает весь список
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identifiers := r.URL.Query()["identifier"]

	var (
		removed int
		err     error
	)
	if len(identifiers) == 0 {
		removed, err = h.service.RemoveAll(r.Context())
	} else {
		removed, err = h.service.Remove(r.Context(), identifiers)
	}

	if err != nil {
		if errors.Is(err, deliveredSvc.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}

		h.logger.Error("Failed to remove delivered notifications: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, &RemoveDeliveredResponse{RemovedCount: removed})
}
