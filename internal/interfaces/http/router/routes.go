package router

import (
	"github.com/gin-gonic/gin"
	"github.com/taxrenew/backend/internal/interfaces/http/handler"
)

// Handlers are the handlers mounted under the versioned API
type Handlers struct {
	DailyNotifications *handler.DailyNotificationHandler
	NotificationStatus *handler.NotificationStatusHandler
	Renewals           *handler.RenewalHandler
	Health             *handler.HealthHandler
}

// RenewalGroups builds the route groups of the renewal API. mutating runs
// in front of every state-changing route, e.g. idempotency checks.
func RenewalGroups(h Handlers, mutating ...gin.HandlerFunc) []*DomainGroup {
	daily := NewDomainGroup("daily-notifications", "/daily-notifications").Mutating(mutating...)
	daily.GET("", h.DailyNotifications.GetSnapshot)
	daily.POST("", h.DailyNotifications.BuildSnapshot)
	daily.DELETE("", h.DailyNotifications.DeleteEntry)
	daily.POST("/bulk-delete", h.DailyNotifications.BulkDelete)
	daily.DELETE("/delete-all", h.DailyNotifications.Clear)

	status := NewDomainGroup("notification-status", "/notification-status").Mutating(mutating...)
	status.GET("", h.NotificationStatus.List)
	status.POST("", h.NotificationStatus.Mark)
	status.DELETE("", h.NotificationStatus.Reset)
	status.POST("/batch", h.NotificationStatus.MarkBatch)
	status.GET("/sent", h.NotificationStatus.ListSent)

	renewals := NewDomainGroup("renewals", "/renewals")
	renewals.GET("", h.Renewals.List)

	health := NewDomainGroup("health", "/health")
	health.GET("", h.Health.Check)

	return []*DomainGroup{daily, status, renewals, health}
}
