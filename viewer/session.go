package viewer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Client opens secure viewing sessions against the document gate. One gate
// call per Open, no retries: a failed call surfaces immediately and the
// purchase is re-verified from scratch on the next attempt.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	log        logrus.FieldLogger
}

// NewClient builds a session client for the gate at baseURL, authenticating
// with the caller's bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		token:      token,
		log:        logrus.WithField("component", "viewer"),
	}
}

// Settings fetches the server-configured viewer knobs.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/viewer/settings", nil)
	if err != nil {
		return nil, errors.Wrap(err, "building settings request")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrRetrievalFailed, err.Error())
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return nil, errors.Wrap(ErrUnauthorized, "fetching viewer settings")
	default:
		return nil, errors.Wrapf(ErrRetrievalFailed, "unexpected settings response %d", resp.StatusCode)
	}

	settings := &Settings{}
	if err := json.NewDecoder(resp.Body).Decode(settings); err != nil {
		return nil, errors.Wrap(ErrRetrievalFailed, err.Error())
	}
	return settings, nil
}

type gateError struct {
	Code       int    `json:"code"`
	Message    string `json:"error"`
	URL        string `json:"url"`
	IsExternal bool   `json:"isExternal"`
}

// Open calls the document gate for contentID and wraps the returned bytes
// in a transient handle. Externally hosted content yields an external
// handle carrying the fallback URL instead of bytes.
func (c *Client) Open(ctx context.Context, contentID string) (*Handle, error) {
	body, err := json.Marshal(map[string]string{"content_id": contentID})
	if err != nil {
		return nil, errors.Wrap(err, "encoding document params")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/serve", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building gate request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrRetrievalFailed, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.Wrap(ErrRetrievalFailed, err.Error())
		}
		c.log.WithField("content_id", contentID).Debugf("Opened secure document, %d bytes", len(data))
		return newHandle(contentID, data), nil
	}

	gateErr := &gateError{}
	if err := json.NewDecoder(resp.Body).Decode(gateErr); err != nil {
		return nil, errors.Wrapf(ErrRetrievalFailed, "unexpected gate response %d", resp.StatusCode)
	}

	switch resp.StatusCode {
	case http.StatusUnprocessableEntity:
		if gateErr.IsExternal && gateErr.URL != "" {
			c.log.WithField("content_id", contentID).Debug("Content is external, falling back to embed")
			return newExternalHandle(contentID, gateErr.URL), nil
		}
		return nil, errors.Wrap(ErrRetrievalFailed, gateErr.Message)
	case http.StatusUnauthorized:
		return nil, errors.Wrap(ErrUnauthorized, gateErr.Message)
	case http.StatusForbidden:
		return nil, errors.Wrap(ErrNotPurchased, gateErr.Message)
	case http.StatusNotFound:
		return nil, errors.Wrap(ErrNotFound, gateErr.Message)
	case http.StatusBadRequest:
		return nil, errors.Wrap(ErrBadRequest, gateErr.Message)
	default:
		return nil, errors.Wrap(ErrRetrievalFailed, gateErr.Message)
	}
}
