package cancel_group

import (
	"net/http"

	"github.com/gorilla/mux"

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
	identifier := mux.Vars(r)["id"]

	if err := h.scheduler.CancelGroupByIdentifier(r.Context(), identifier); err != nil {
		if handlers.RespondSchedulerError(w, err) {
			h.logger.Warn("Group %s was not cancelled: %v", identifier, err)
			return
		}

		h.logger.Error("Failed to cancel group %s: %v", identifier, err)
		handlers.RespondInternalError(w)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
