package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// listNotifications handles GET /api/notificaciones
func (h *Handler) listNotifications(c *gin.Context) {
	notifications, err := h.notifications.List(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// unreadNotifications handles GET /api/notificaciones/no_leidas
func (h *Handler) unreadNotifications(c *gin.Context) {
	notifications, err := h.notifications.Unread(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(notifications),
		"results": notifications,
	})
}

// markNotificationRead handles PATCH /api/notificaciones/:id/marcar_leida
func (h *Handler) markNotificationRead(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	notification, err := h.notifications.MarkRead(c.Request.Context(), getPrincipal(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notification)
}

// markAllNotificationsRead handles PATCH /api/notificaciones/marcar_todas_leidas
func (h *Handler) markAllNotificationsRead(c *gin.Context) {
	count, err := h.notifications.MarkAllRead(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Se marcaron %d notificaciones como leídas", count),
		"count":   count,
	})
}

// deleteReadNotifications handles DELETE /api/notificaciones/limpiar_leidas
func (h *Handler) deleteReadNotifications(c *gin.Context) {
	count, err := h.notifications.DeleteRead(c.Request.Context(), getPrincipal(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Se eliminaron %d notificaciones leídas", count),
		"count":   count,
	})
}
