package get_group

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/models"
)

const (
	msgGroupNotFound = "группа не найдена"
)

type Handler struct {
	scheduler Scheduler
}

func NewHandler(scheduler Scheduler) *Handler {
	return &Handler{scheduler: scheduler}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	group := h.scheduler.Group(mux.Vars(r)["id"])
	if group == nil {
		handlers.RespondNotFound(w, msgGroupNotFound)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, models.FromDomainGroup(group))
}
