package schedule_group

import (
	"net/http"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/models"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
	msgEmptyGroup         = "список notifications не может быть пустым"
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
	var req models.GroupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.Notifications) == 0 {
		h.logger.Warn("Empty notifications list in group request")
		handlers.RespondBadRequest(w, msgEmptyGroup)
		return
	}

	group, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("Invalid group request: %v", err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	// Группа планируется целиком или не планируется вовсе
	scheduled, err := h.scheduler.ScheduleGroup(r.Context(), group)
	if err != nil {
		if handlers.RespondSchedulerError(w, err) {
			h.logger.Warn("Group %s was not scheduled: %v", group.Identifier, err)
			return
		}

		h.logger.Error("Failed to schedule group %s: %v", group.Identifier, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("Scheduled group %s of %d notifications via API", scheduled.Identifier, scheduled.Count())

	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainGroup(scheduled))
}
