package indievia

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/indievia/indievia-backend/pkg/pagination"
)

const (
	notificationsPrefix = "notifications"
	unreadCountKey      = "notifications:unread"
)

// Notifications лента уведомлений текущего пользователя.
func (c *Client) Notifications(unreadOnly bool, perPage int) *Infinite[Notification] {
	return NewInfinite(func(ctx context.Context, page int) (*pagination.Page[Notification], error) {
		filters := Filters{"page": strconv.Itoa(page), "per_page": strconv.Itoa(perPage)}
		if unreadOnly {
			filters["unread_only"] = "true"
		}
		return Fetch(ctx, c.cache, Key(notificationsPrefix+":list", filters), func(ctx context.Context) (*pagination.Page[Notification], error) {
			var p pagination.Page[Notification]
			if err := c.Query(ctx, "notifications", filters, &p); err != nil {
				return nil, err
			}
			return &p, nil
		})
	})
}

// UnreadCount число непрочитанных уведомлений.
func (c *Client) UnreadCount(ctx context.Context) (int64, error) {
	resp, err := Fetch(ctx, c.cache, unreadCountKey, func(ctx context.Context) (countBody, error) {
		var r countBody
		err := c.Query(ctx, "notifications/unread/count", nil, &r)
		return r, err
	})
	return resp.Count, err
}

// MarkRead отмечает уведомление прочитанным.
func (c *Client) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := c.Invoke(ctx, http.MethodPatch, "notifications/"+id.String()+"/read", nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(notificationsPrefix)
	return nil
}

// MarkAllRead отмечает все уведомления прочитанными и возвращает их число.
func (c *Client) MarkAllRead(ctx context.Context) (int64, error) {
	var resp countBody
	if err := c.Invoke(ctx, http.MethodPatch, "notifications/read-all", nil, &resp); err != nil {
		return 0, err
	}
	c.cache.Invalidate(notificationsPrefix)
	return resp.Count, nil
}

// DeleteNotification удаляет уведомление.
func (c *Client) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	if err := c.Invoke(ctx, http.MethodDelete, "notifications/"+id.String(), nil, nil); err != nil {
		return err
	}
	c.cache.Invalidate(notificationsPrefix)
	return nil
}
