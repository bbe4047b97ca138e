// Package client talks to the groupcal HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"

	"groupcal/models"
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("groupcal api returned %d: %s", e.Status, e.Detail)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithAdminToken sends token as a bearer credential on every request.
func WithAdminToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FreeSlotParams are the optional filters of FreeSlots. Nil Members leaves the
// parameter out so the server queries everyone with events in the month.
type FreeSlotParams struct {
	Year            int
	Month           int
	Members         []string
	DurationMinutes int
	WorkStart       string
	WorkEnd         string
}

// Upload is an image attached to a schedule submission.
type Upload struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Submission is the body of SubmitSchedule.
type Submission struct {
	Name        string
	Text        string
	Images      []Upload
	TargetYear  int
	TargetMonth int
}

func (c *Client) Events(ctx context.Context, year, month int) ([]models.Event, error) {
	q := url.Values{}
	setInt(q, "year", year)
	setInt(q, "month", month)

	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/events/?"+q.Encode(), nil, "", &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) FreeSlots(ctx context.Context, p FreeSlotParams) (models.FreeSlotsByDate, error) {
	q := url.Values{}
	setInt(q, "year", p.Year)
	setInt(q, "month", p.Month)
	setInt(q, "duration_minutes", p.DurationMinutes)
	if p.Members != nil {
		if len(p.Members) == 0 {
			q.Set("members", "")
		}
		for _, m := range p.Members {
			q.Add("members", m)
		}
	}
	if p.WorkStart != "" {
		q.Set("work_start_time", p.WorkStart)
	}
	if p.WorkEnd != "" {
		q.Set("work_end_time", p.WorkEnd)
	}

	slots := models.FreeSlotsByDate{}
	if err := c.do(ctx, http.MethodGet, "/free_slots/?"+q.Encode(), nil, "", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SubmitSchedule posts a multipart submission and returns the stored events.
func (c *Client) SubmitSchedule(ctx context.Context, s Submission) ([]models.Event, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fields := map[string]string{"name": s.Name, "schedule_text": s.Text}
	if s.TargetYear > 0 {
		fields["target_year"] = strconv.Itoa(s.TargetYear)
	}
	if s.TargetMonth > 0 {
		fields["target_month"] = strconv.Itoa(s.TargetMonth)
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	for _, img := range s.Images {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="images"; filename=%q`, img.Filename))
		mime := img.MIMEType
		if mime == "" {
			mime = http.DetectContentType(img.Data)
		}
		h.Set("Content-Type", mime)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("failed to create image part: %w", err)
		}
		if _, err := part.Write(img.Data); err != nil {
			return nil, fmt.Errorf("failed to write image part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	var events []models.Event
	if err := c.do(ctx, http.MethodPost, "/schedule/", &buf, mw.FormDataContentType(), &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) DeleteByDateAndName(ctx context.Context, date, name string) (*models.DeleteResult, error) {
	body, err := json.Marshal(models.DeleteEventPayload{EventDate: date, Name: name})
	if err != nil {
		return nil, err
	}
	var result models.DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/events/delete_by_date_name/", bytes.NewReader(body), "application/json", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteAll wipes every event. Requires WithAdminToken.
func (c *Client) DeleteAll(ctx context.Context) (*models.DeleteResult, error) {
	var result models.DeleteResult
	if err := c.do(ctx, http.MethodDelete, "/all_delete", nil, "", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func setInt(q url.Values, key string, v int) {
	if v != 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call groupcal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode groupcal response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
	var body struct {
		Detail string `json:"detail"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if json.Unmarshal(raw, &body) == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	}
	return apiErr
}
