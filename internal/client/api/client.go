// Package api is the typed HTTP client for the EventHub server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/dmitrijs2005/eventhub/internal/common"
)

// Client talks to the EventHub REST API. The zero value is not usable;
// construct it with NewClient. SetToken attaches the bearer token used on
// authenticated calls.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

// EventInput carries the event fields for create and edit calls. On edit,
// empty strings mean "leave unchanged"; the client only transmits the fields
// that are set. BannerPath, when non-empty, names a local file to upload.
type EventInput struct {
	Title       string
	Description string
	Date        string
	Time        string
	Location    string
	Category    string
	BannerPath  string
}

func (in *EventInput) fields() map[string]string {
	m := map[string]string{}
	if in.Title != "" {
		m["title"] = in.Title
	}
	if in.Description != "" {
		m["description"] = in.Description
	}
	if in.Date != "" {
		m["date"] = in.Date
	}
	if in.Time != "" {
		m["time"] = in.Time
	}
	if in.Location != "" {
		m["location"] = in.Location
	}
	if in.Category != "" {
		m["category"] = in.Category
	}
	return m
}

type errorResponse struct {
	Error string `json:"error"`
}

// decodeError turns a non-2xx response into a sentinel error from
// internal/common so callers can branch with errors.Is. The server's message
// is carried along for display.
func decodeError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = resp.Status
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusBadRequest:
		sentinel = common.ErrValidation
	case http.StatusUnauthorized:
		sentinel = common.ErrUnauthorized
	case http.StatusForbidden:
		sentinel = common.ErrForbidden
	case http.StatusNotFound:
		sentinel = common.ErrNotFound
	case http.StatusConflict:
		sentinel = common.ErrEmailAlreadyExists
	default:
		sentinel = common.ErrInternal
	}

	return fmt.Errorf("%w: %s", sentinel, msg)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// doMultipart sends fields plus an optional banner file as multipart
// form data. The whole body is built in memory; banners are small.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, bannerPath string, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}

	if bannerPath != "" {
		f, err := os.Open(bannerPath)
		if err != nil {
			return err
		}
		defer f.Close()

		part, err := w.CreateFormFile("banner", filepath.Base(bannerPath))
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, f); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	return c.do(ctx, method, path, &buf, w.FormDataContentType(), out)
}

func (c *Client) Register(ctx context.Context, name, email, password string) (models.User, error) {
	req := map[string]string{"name": name, "email": email, "password": password}
	var resp struct {
		User models.User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/users/register", req, &resp)
	return resp.User, err
}

func (c *Client) Login(ctx context.Context, email, password string) (string, models.User, error) {
	req := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/users/login", req, &resp)
	return resp.Token, resp.User, err
}

func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := c.doJSON(ctx, http.MethodGet, "/api/events", nil, &events)
	return events, err
}

func (c *Client) GetEvent(ctx context.Context, id string) (models.Event, error) {
	var event models.Event
	err := c.doJSON(ctx, http.MethodGet, "/api/events/"+id, nil, &event)
	return event, err
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (models.Event, error) {
	var event models.Event
	err := c.doMultipart(ctx, http.MethodPost, "/api/events", in.fields(), in.BannerPath, &event)
	return event, err
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in EventInput) (models.Event, error) {
	var event models.Event
	err := c.doMultipart(ctx, http.MethodPut, "/api/events/"+id, in.fields(), in.BannerPath, &event)
	return event, err
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/events/"+id, nil, nil)
}

// JoinEvent registers the current user as an attendee and returns the
// refreshed event.
func (c *Client) JoinEvent(ctx context.Context, id string) (models.Event, error) {
	var resp struct {
		Message string       `json:"message"`
		Event   models.Event `json:"event"`
	}
	err := c.doJSON(ctx, http.MethodPost, "/api/events/"+id+"/register", nil, &resp)
	return resp.Event, err
}
