package health

import (
	"net/http"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers"
)

// Scheduler интерфейс планировщика уведомлений
type Scheduler interface {
	ScheduledCount() int
}

type Handler struct {
	scheduler Scheduler
	capacity  int
}

func NewHandler(scheduler Scheduler, capacity int) *Handler {
	return &Handler{
		scheduler: scheduler,
		capacity:  capacity,
	}
}

type Response struct {
	Status    string `json:"status"`
	Scheduled int    `json:"scheduled"`
	Capacity  int    `json:"capacity"`
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, &Response{
		Status:    "healthy",
		Scheduled: h.scheduler.ScheduledCount(),
		Capacity:  h.capacity,
	})
}
