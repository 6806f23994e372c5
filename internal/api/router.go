// Package api маршрутизация HTTP API планировщика
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/cancel_all_notifications"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/cancel_group"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/cancel_notification"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/create_notification"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/get_delivered"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/get_group"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/get_notification"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/health"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/list_delivered"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/list_notifications"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/remove_delivered"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/reschedule_notification"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/handlers/schedule_group"
	"github.com/m04kA/SMC-NotificationScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-NotificationScheduler/internal/service/delivered"
	"github.com/m04kA/SMC-NotificationScheduler/internal/service/scheduler"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Options параметры роутера
type Options struct {
	// Metrics nil отключает HTTP метрики и /metrics
	Metrics        middleware.HTTPMetrics
	MetricsPath    string
	MetricsHandler http.Handler
}

// NewRouter регистрирует все маршруты сервиса
func NewRouter(schedulerSvc *scheduler.Service, deliveredSvc *delivered.Service, logger Logger, opts Options) *mux.Router {
	r := mux.NewRouter()

	if opts.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(opts.Metrics))
	}

	// Публичные endpoints
	healthHandler := health.NewHandler(schedulerSvc, schedulerSvc.Settings().MaximumAllowedNotifications)
	r.HandleFunc("/health", healthHandler.Handle).Methods(http.MethodGet)

	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Notifications endpoints
	api.HandleFunc("/notifications", create_notification.NewHandler(schedulerSvc, logger).Handle).Methods(http.MethodPost)
	api.HandleFunc("/notifications", list_notifications.NewHandler(schedulerSvc).Handle).Methods(http.MethodGet)
	api.HandleFunc("/notifications", cancel_all_notifications.NewHandler(schedulerSvc, logger).Handle).Methods(http.MethodDelete)
	api.HandleFunc("/notifications/{id}", get_notification.NewHandler(schedulerSvc).Handle).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}", reschedule_notification.NewHandler(schedulerSvc, logger).Handle).Methods(http.MethodPut)
	api.HandleFunc("/notifications/{id}", cancel_notification.NewHandler(schedulerSvc, logger).Handle).Methods(http.MethodDelete)

	// Groups endpoints
	api.HandleFunc("/groups", schedule_group.NewHandler(schedulerSvc, logger).Handle).Methods(http.MethodPost)
	api.HandleFunc("/groups/{id}", get_group.NewHandler(schedulerSvc).Handle).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id}", cancel_group.NewHandler(schedulerSvc, logger).Handle).Methods(http.MethodDelete)

	// Delivered endpoints
	api.HandleFunc("/delivered", list_delivered.NewHandler(deliveredSvc, logger).Handle).Methods(http.MethodGet)
	api.HandleFunc("/delivered", remove_delivered.NewHandler(deliveredSvc, logger).Handle).Methods(http.MethodDelete)
	api.HandleFunc("/delivered/{id}", get_delivered.NewHandler(deliveredSvc, logger).Handle).Methods(http.MethodGet)

	return r
}
