package services

import (
	"context"
	"fmt"
	"html"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/vnkhanh/social-blog-backend/models"
	"github.com/vnkhanh/social-blog-backend/utils"
)

// NotificationPayload là dữ liệu realtime gửi qua websocket/redis
type NotificationPayload struct {
	Type         string               `json:"type"`
	Notification *models.Notification `json:"notification"`
}

func encodePayload(n *models.Notification) ([]byte, error) {
	return sonic.Marshal(NotificationPayload{Type: "notification", Notification: n})
}

// DatabaseChannel lưu thông báo vào bảng notifications
type DatabaseChannel struct {
	DB *gorm.DB
}

func (DatabaseChannel) Name() string { return "database" }

func (c DatabaseChannel) Deliver(ctx context.Context, _ models.User, n *models.Notification) error {
	return c.DB.WithContext(ctx).Create(n).Error
}

// Pusher là phần của ws.Hub mà channel cần
type Pusher interface {
	BroadcastToUser(userID string, data []byte) int
	SendBadgeUpdate(userID string, count int64)
}

// WebSocketChannel đẩy thông báo và badge chưa đọc tới các kết nối đang mở.
// User offline không tính là lỗi: thông báo đã nằm trong DB.
type WebSocketChannel struct {
	DB  *gorm.DB
	Hub Pusher
}

func (WebSocketChannel) Name() string { return "websocket" }

func (c WebSocketChannel) Deliver(ctx context.Context, recipient models.User, n *models.Notification) error {
	data, err := encodePayload(n)
	if err != nil {
		return err
	}
	userID := recipient.ID.String()
	if c.Hub.BroadcastToUser(userID, data) == 0 {
		return nil
	}

	count, err := UnreadCount(ctx, c.DB, recipient.ID)
	if err != nil {
		return err
	}
	c.Hub.SendBadgeUpdate(userID, count)
	return nil
}

// MailChannel gửi email; Send mặc định là utils.SendEmail
type MailChannel struct {
	SMTP utils.SMTPConfig
	Send func(cfg utils.SMTPConfig, to, subject, body string) error
}

func (MailChannel) Name() string { return "mail" }

func (c MailChannel) Deliver(_ context.Context, recipient models.User, n *models.Notification) error {
	if recipient.Email == "" {
		return nil
	}
	send := c.Send
	if send == nil {
		send = utils.SendEmail
	}
	subject := "New post: " + n.Title
	body := fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", html.EscapeString(recipient.Name), html.EscapeString(n.Message))
	if n.RelatedURL != nil {
		body += fmt.Sprintf(`<p><a href="%s">Read it</a></p>`, html.EscapeString(*n.RelatedURL))
	}
	return send(c.SMTP, recipient.Email, subject, body)
}

// RedisChannel publish lên "notifications:<user_id>" cho các instance/service khác
type RedisChannel struct {
	Client redis.UniversalClient
}

func (RedisChannel) Name() string { return "redis" }

func RedisTopic(userID string) string {
	return "notifications:" + userID
}

func (c RedisChannel) Deliver(ctx context.Context, recipient models.User, n *models.Notification) error {
	data, err := encodePayload(n)
	if err != nil {
		return err
	}
	return c.Client.Publish(ctx, RedisTopic(recipient.ID.String()), data).Err()
}
