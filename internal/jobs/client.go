package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/karthikkrishnakumar/workfriar-backend/internal/core/domain"
	portssvc "github.com/karthikkrishnakumar/workfriar-backend/internal/core/ports/services"
)

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an Asynq client.
func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

var _ portssvc.NotificationDispatcher = (*Client)(nil)

// DispatchNotification enqueues a notification for the worker to persist.
func (c *Client) DispatchNotification(ctx context.Context, n domain.Notification) error {
	task, err := NewNotificationTask(n)
	if err != nil {
		return fmt.Errorf("build notification task: %w", err)
	}
	if _, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault)); err != nil {
		return fmt.Errorf("enqueue notification for user %s: %w", n.UserID, err)
	}
	return nil
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}
