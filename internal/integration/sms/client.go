// Package sms sends text messages through the RML bulk SMS HTTP gateway.
package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"job-assignment-service/internal/integration"
)

const DefaultBaseURL = "https://sms6.rmlconnect.net:8443/bulksms/bulksms"

var ErrUnavailable = errors.New("sms gateway unavailable")

type Config struct {
	BaseURL    string
	Username   string
	Password   string
	SenderID   string
	EntityID   string
	TemplateID string
	Timeout    time.Duration
}

type Client struct {
	http *http.Client
	cfg  Config
	cb   *gobreaker.CircuitBreaker
	log  *zap.SugaredLogger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
		cb:   integration.NewBreaker("sms", 30*time.Second),
		log:  zap.S().Named("sms"),
	}
}

// Send delivers text to a canonical 91XXXXXXXXXX number.
func (c *Client) Send(ctx context.Context, phone, text string) error {
	if !strings.HasPrefix(phone, "91") {
		phone = "91" + phone
	}

	q := url.Values{}
	q.Set("username", c.cfg.Username)
	q.Set("password", c.cfg.Password)
	q.Set("type", "0")
	q.Set("dlr", "1")
	q.Set("destination", phone)
	q.Set("source", c.cfg.SenderID)
	q.Set("message", text)
	q.Set("entityid", c.cfg.EntityID)
	q.Set("tempid", c.cfg.TemplateID)
	endpoint := c.cfg.BaseURL + "?" + q.Encode()

	_, err := c.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			// url.Error carries the query string with the password.
			var uerr *url.Error
			if errors.As(err, &uerr) {
				return nil, fmt.Errorf("sms gateway: %w", uerr.Err)
			}
			return nil, err
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))

		if resp.StatusCode >= 300 {
			return nil, fmt.Errorf("sms gateway: status %d", resp.StatusCode)
		}
		c.log.Debugw("gateway response", "body", strings.TrimSpace(string(body)))
		return nil, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrUnavailable
	}
	return err
}
