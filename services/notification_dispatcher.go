package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/vnkhanh/social-blog-backend/models"
)

// Channel giao một thông báo tới một người nhận (DB, websocket, email, redis...)
type Channel interface {
	Name() string
	Deliver(ctx context.Context, recipient models.User, n *models.Notification) error
}

type DispatchReport struct {
	Recipients int
	Delivered  int
	Failed     int
}

// Dispatcher gửi thông báo bài viết mới tới những người đã favorite tác giả.
// Lỗi giao tới từng người nhận chỉ được log, không trả về cho người đăng bài.
type Dispatcher struct {
	favorites *FavoriteService
	channels  []Channel

	queue chan PostCreated
	wg    sync.WaitGroup
	mu    sync.RWMutex
	// closed chặn Publish sau khi Close
	closed bool
}

func NewDispatcher(favorites *FavoriteService, channels ...Channel) *Dispatcher {
	return &Dispatcher{favorites: favorites, channels: channels}
}

// Start chuyển Publish sang chế độ bất đồng bộ với một worker pool
func (d *Dispatcher) Start(workers, buffer int) {
	if workers <= 0 {
		return
	}
	if buffer < 1 {
		buffer = 1
	}
	d.queue = make(chan PostCreated, buffer)
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	log.Printf("notification dispatcher started (%d workers, queue %d)", workers, buffer)
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for evt := range d.queue {
		d.Dispatch(context.Background(), evt)
	}
}

// Publish không bao giờ trả lỗi cho caller: chạy đồng bộ nếu chưa Start,
// ngược lại đưa vào hàng đợi và bỏ sự kiện khi hàng đợi đầy.
func (d *Dispatcher) Publish(ctx context.Context, evt PostCreated) {
	if d.queue == nil {
		d.Dispatch(context.WithoutCancel(ctx), evt)
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		log.Printf("dispatcher closed, dropping post_created for post %s", evt.Post.ID)
		return
	}
	select {
	case d.queue <- evt:
	default:
		log.Printf("notification queue full, dropping post_created for post %s", evt.Post.ID)
	}
}

// Close đợi các sự kiện trong hàng đợi được xử lý xong
func (d *Dispatcher) Close() {
	if d.queue == nil {
		return
	}
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Dispatch tìm follower của tác giả và giao một thông báo cho mỗi người
func (d *Dispatcher) Dispatch(ctx context.Context, evt PostCreated) DispatchReport {
	post := evt.Post
	followers, err := d.favorites.Followers(ctx, post.UserID)
	if err != nil {
		log.Printf("post %s: cannot resolve followers: %v", post.ID, err)
		return DispatchReport{}
	}

	report := DispatchReport{Recipients: len(followers)}
	for _, follower := range followers {
		n := newPostNotification(follower.ID, post)
		if err := d.deliver(ctx, follower, n); err != nil {
			report.Failed++
			log.Printf("post %s: notify user %s: %v", post.ID, follower.ID, err)
			continue
		}
		report.Delivered++
	}

	if report.Recipients > 0 {
		log.Printf("post %s: notified %d/%d followers", post.ID, report.Delivered, report.Recipients)
	}
	return report
}

// deliver chạy mọi channel; một channel lỗi không chặn channel còn lại
func (d *Dispatcher) deliver(ctx context.Context, recipient models.User, n *models.Notification) error {
	var failed []string
	for _, ch := range d.channels {
		if err := ch.Deliver(ctx, recipient, n); err != nil {
			log.Printf("channel %s: user %s: %v", ch.Name(), recipient.ID, err)
			failed = append(failed, ch.Name())
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("failed channels %v", failed)
	}
	return nil
}

func newPostNotification(recipientID uuid.UUID, post models.Post) *models.Notification {
	postID := post.ID
	authorID := post.UserID
	author := post.User.Name
	if author == "" {
		author = "Someone you follow"
	}
	url := "/posts/" + post.ID.String()

	return &models.Notification{
		UserID:     recipientID,
		Title:      post.Title,
		Message:    fmt.Sprintf("%s published a new post: %q", author, post.Title),
		Type:       models.NotificationPostCreated,
		PostID:     &postID,
		ActorID:    &authorID,
		RelatedURL: &url,
	}
}
