package rowstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Client talks to a hosted row-database service (Baserow wire format). It is
// a thin transport wrapper: list/get/create/update/delete on table rows, with
// token auth and user-facing field names. Callers decode results into typed
// entities; the client never retries.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: http.DefaultClient,
	}
}

// ListResponse is the store's paged collection envelope.
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  json.RawMessage `json:"results"`
}

// StatusError is any non-2xx store response, surfaced as a single message.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("row store request failed with status %d", e.StatusCode)
}

// EqualFilter builds the store's equality pre-filter parameter for a field.
func EqualFilter(field, value string) url.Values {
	params := url.Values{}
	params.Set("filter__"+field+"__equal", value)
	return params
}

func (c *Client) ListRows(ctx context.Context, tableID string, params url.Values) (ListResponse, error) {
	endpoint := c.tableURL(tableID) + "/?" + c.encodeParams(params)
	var list ListResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &list); err != nil {
		return ListResponse{}, err
	}
	return list, nil
}

func (c *Client) GetRow(ctx context.Context, tableID string, rowID int64, out interface{}) error {
	endpoint := c.rowURL(tableID, rowID) + "/?user_field_names=true"
	return c.do(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) CreateRow(ctx context.Context, tableID string, fields interface{}, out interface{}) error {
	endpoint := c.tableURL(tableID) + "/?user_field_names=true"
	return c.do(ctx, http.MethodPost, endpoint, fields, out)
}

// UpdateRow sends a partial PATCH; only the provided fields change.
func (c *Client) UpdateRow(ctx context.Context, tableID string, rowID int64, fields interface{}, out interface{}) error {
	endpoint := c.rowURL(tableID, rowID) + "/?user_field_names=true"
	return c.do(ctx, http.MethodPatch, endpoint, fields, out)
}

func (c *Client) DeleteRow(ctx context.Context, tableID string, rowID int64) error {
	endpoint := c.rowURL(tableID, rowID) + "/"
	return c.do(ctx, http.MethodDelete, endpoint, nil, nil)
}

func (c *Client) tableURL(tableID string) string {
	return c.BaseURL + "/api/database/rows/table/" + tableID
}

func (c *Client) rowURL(tableID string, rowID int64) string {
	return c.tableURL(tableID) + "/" + strconv.FormatInt(rowID, 10)
}

func (c *Client) encodeParams(params url.Values) string {
	merged := url.Values{}
	for key, values := range params {
		for _, value := range values {
			merged.Add(key, value)
		}
	}
	merged.Set("user_field_names", "true")
	return merged.Encode()
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Token "+c.Token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return StatusError{StatusCode: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	payload := struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Detail != "" {
		return payload.Detail
	}
	return payload.Error
}
