package sdk

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// AnnouncementTimeLayout is the publish time format the API accepts.
const AnnouncementTimeLayout = "2006-01-02T15:04:05"

// ListAnnouncements returns announcements, limited to one department when deptID is non-zero.
func (c *Client) ListAnnouncements(ctx context.Context, deptID int64) ([]Announcement, error) {
	req := c.request(ctx)
	if deptID != 0 {
		req.SetQueryParam("deptId", strconv.FormatInt(deptID, 10))
	}
	return do[[]Announcement](c, req, http.MethodGet, "/announcement")
}

// UploadAnnouncement publishes an announcement at publishAt.
func (c *Client) UploadAnnouncement(ctx context.Context, deptID int64, title, content string, publishAt time.Time) error {
	if title == "" {
		return errors.New("announcement title is required")
	}
	body := Announcement{
		DeptID:      deptID,
		Title:       title,
		Content:     content,
		PublishTime: publishAt.Format(AnnouncementTimeLayout),
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(body), http.MethodPost, "/announcement")
	return err
}

// UpdateAnnouncement changes the fields set in update.
func (c *Client) UpdateAnnouncement(ctx context.Context, update AnnouncementUpdate) error {
	if update.ID == 0 {
		return errors.New("announcement id is required")
	}
	_, err := do[Empty](c, c.request(ctx).SetBody(update), http.MethodPatch, "/announcement")
	return err
}

// DeleteAnnouncements removes the given announcements in one call.
func (c *Client) DeleteAnnouncements(ctx context.Context, ids []int64) error {
	joined, err := joinIDs(ids)
	if err != nil {
		return err
	}
	_, err = do[Empty](c, c.request(ctx), http.MethodDelete, "/announcement/"+joined)
	return err
}
