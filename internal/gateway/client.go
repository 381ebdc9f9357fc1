package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/nikbrunner/bmjump/internal/model"
)

// Client is a Gateway backed by a Server on a unix socket. Requests are
// sent one at a time over a single connection, redialled after a failure.
type Client struct {
	path string

	mu   sync.Mutex
	conn net.Conn
	enc  *json.Encoder
	dec  *json.Decoder
}

// NewClient creates a Client for the socket at path. No connection is made
// until the first request.
func NewClient(path string) *Client {
	return &Client{path: path}
}

// Close drops the connection, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

// List asks the server for every bookmark.
func (c *Client) List(ctx context.Context) ([]model.Bookmark, error) {
	resp, err := c.call(ctx, Request{Action: ActionList})
	if err != nil {
		return nil, err
	}
	return fromEntries(resp.Bookmarks), nil
}

// Update asks the server to change a bookmark's title and URL.
func (c *Client) Update(ctx context.Context, id, title, url string) error {
	_, err := c.call(ctx, Request{Action: ActionEdit, ID: id, Title: title, URL: url})
	return err
}

// Delete asks the server to remove a bookmark.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := c.call(ctx, Request{Action: ActionDelete, ID: id})
	return err
}

// OpenInNewTab asks the server to open url.
func (c *Client) OpenInNewTab(ctx context.Context, url string) error {
	_, err := c.call(ctx, Request{Action: ActionOpen, URL: url})
	return err
}

func (c *Client) call(ctx context.Context, req Request) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		var d net.Dialer
		conn, err := d.DialContext(ctx, "unix", c.path)
		if err != nil {
			return Response{}, fmt.Errorf("dial gateway: %w", err)
		}
		c.conn = conn
		c.enc = json.NewEncoder(conn)
		c.dec = json.NewDecoder(conn)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Time{}
	}
	_ = c.conn.SetDeadline(deadline)

	var resp Response
	if err := c.enc.Encode(req); err != nil {
		_ = c.closeLocked()
		return Response{}, fmt.Errorf("%s: send: %w", req.Action, err)
	}
	if err := c.dec.Decode(&resp); err != nil {
		_ = c.closeLocked()
		return Response{}, fmt.Errorf("%s: receive: %w", req.Action, err)
	}

	if !resp.Success {
		return resp, &RemoteError{Action: req.Action, Code: resp.Code, Message: resp.Error}
	}
	return resp, nil
}

func (c *Client) closeLocked() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn, c.enc, c.dec = nil, nil, nil
	return err
}
