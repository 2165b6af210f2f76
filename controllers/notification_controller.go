package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vnkhanh/social-blog-backend/services"
)

// BadgeSender là phần của ws.Hub dùng để cập nhật badge realtime
type BadgeSender interface {
	SendBadgeUpdate(userID string, count int64)
}

type NotificationController struct {
	Notifications *services.NotificationService
	Badges        BadgeSender
}

func NewNotificationController(notifications *services.NotificationService, badges BadgeSender) *NotificationController {
	return &NotificationController{Notifications: notifications, Badges: badges}
}

// Danh sách thông báo, ?unread_only=true để lọc chưa đọc
func (nc *NotificationController) Index(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	list, err := nc.Notifications.List(c.Request.Context(), userID, c.Query("unread_only") == "true")
	if err != nil {
		respondError(c, err, "fetch notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// Đếm số thông báo chưa đọc
func (nc *NotificationController) UnreadCount(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	count, err := nc.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "count notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// Đánh dấu đã đọc
func (nc *NotificationController) MarkRead(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := nc.Notifications.MarkRead(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "update notification")
		return
	}
	nc.pushBadge(c, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (nc *NotificationController) MarkAllRead(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	if err := nc.Notifications.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondError(c, err, "mark all read")
		return
	}
	nc.pushBadge(c, userID)
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// Xóa một thông báo cụ thể
func (nc *NotificationController) Destroy(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := nc.Notifications.Delete(c.Request.Context(), userID, id); err != nil {
		respondError(c, err, "delete notification")
		return
	}
	nc.pushBadge(c, userID)
	c.Status(http.StatusNoContent)
}

// Xóa tất cả thông báo của user
func (nc *NotificationController) DestroyAll(c *gin.Context) {
	nc.destroyAll(c, false)
}

// Xóa tất cả thông báo đã đọc, giữ lại chưa đọc
func (nc *NotificationController) DestroyRead(c *gin.Context) {
	nc.destroyAll(c, true)
}

func (nc *NotificationController) destroyAll(c *gin.Context, readOnly bool) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	if err := nc.Notifications.DeleteAll(c.Request.Context(), userID, readOnly); err != nil {
		respondError(c, err, "delete notifications")
		return
	}
	nc.pushBadge(c, userID)
	c.Status(http.StatusNoContent)
}

func (nc *NotificationController) pushBadge(c *gin.Context, userID uuid.UUID) {
	if nc.Badges == nil {
		return
	}
	count, err := nc.Notifications.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		return
	}
	nc.Badges.SendBadgeUpdate(userID.String(), count)
}
