// Package jolokia implements the management port over a Jolokia agent,
// the HTTP/JSON bridge to a node's JMX MBeans.
package jolokia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	resty "github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/bnema/keyflush/internal/domain"
)

const (
	storageServiceMBean = "org.apache.cassandra.db:type=StorageService"
	keyspacesAttribute  = "Keyspaces"
	flushOperation      = "forceKeyspaceFlush(java.lang.String,[Ljava.lang.String;)"

	DefaultTimeout    = 30 * time.Minute
	DefaultRetryCount = 3
	RetryWaitTime     = 500 * time.Millisecond
	RetryWaitTimeMax  = 5 * time.Second
)

// Config holds the management endpoint settings.
type Config struct {
	URL        string
	Username   string
	Password   string
	Timeout    time.Duration
	RetryCount int
}

// Client talks to one node's Jolokia agent.
type Client struct {
	http *resty.Client
	url  string
	log  zerolog.Logger
}

type request struct {
	Type      string `json:"type"`
	MBean     string `json:"mbean"`
	Attribute string `json:"attribute,omitempty"`
	Operation string `json:"operation,omitempty"`
	Arguments []any  `json:"arguments,omitempty"`
}

type response struct {
	Status    int             `json:"status"`
	Value     json.RawMessage `json:"value"`
	Error     string          `json:"error"`
	ErrorType string          `json:"error_type"`
}

// RemoteError is a failure reported by the agent for a single request.
type RemoteError struct {
	Status  int
	Type    string
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("jolokia status %d: %s: %s", e.Status, e.Type, e.Message)
}

// Is makes errors.Is(err, domain.ErrRemoteOperation) match any RemoteError.
func (e *RemoteError) Is(target error) bool {
	return target == domain.ErrRemoteOperation
}

// NewClient creates a client for the agent at cfg.URL.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}

	log = log.With().Str("component", "jolokia").Str("url", cfg.URL).Logger()

	c := resty.New()
	c.SetTimeout(cfg.Timeout)
	c.SetHeader("Content-Type", "application/json")
	c.SetRetryCount(cfg.RetryCount)
	c.SetRetryWaitTime(RetryWaitTime)
	c.SetRetryMaxWaitTime(RetryWaitTimeMax)
	if cfg.Username != "" {
		c.SetBasicAuth(cfg.Username, cfg.Password)
	}
	c.AddRetryCondition(func(response *resty.Response, err error) bool {
		if response == nil {
			return false
		}
		switch response.StatusCode() {
		case
			http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		default:
			return false
		}
	})
	c.AddRetryHook(func(response *resty.Response, err error) {
		ev := log.Warn().Err(err)
		if response != nil && response.Request != nil {
			ev = ev.Int("status", response.StatusCode()).Int("attempt", response.Request.Attempt)
		}
		ev.Msg("retrying management request")
	})

	return &Client{http: c, url: cfg.URL, log: log}
}

// ListKeyspaces reads the node's keyspace names.
func (c *Client) ListKeyspaces(ctx context.Context) ([]string, error) {
	value, err := c.do(ctx, request{
		Type:      "read",
		MBean:     storageServiceMBean,
		Attribute: keyspacesAttribute,
	})
	if err != nil {
		return nil, err
	}

	keyspaces := []string{}
	if len(value) > 0 && string(value) != "null" {
		if err := json.Unmarshal(value, &keyspaces); err != nil {
			return nil, fmt.Errorf("%w: decode keyspaces: %v", domain.ErrRemoteOperation, err)
		}
	}
	return keyspaces, nil
}

// ForceKeyspaceFlush invokes the flush operation. No tables means all tables.
func (c *Client) ForceKeyspaceFlush(ctx context.Context, keyspace string, tables ...string) error {
	if tables == nil {
		tables = []string{}
	}
	_, err := c.do(ctx, request{
		Type:      "exec",
		MBean:     storageServiceMBean,
		Operation: flushOperation,
		Arguments: []any{keyspace, tables},
	})
	if err != nil {
		return err
	}
	c.log.Debug().Str("keyspace", keyspace).Strs("tables", tables).Msg("flush invoked")
	return nil
}

func (c *Client) do(ctx context.Context, req request) (json.RawMessage, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post(c.url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", domain.ErrEndpointUnavailable, req.Type, req.MBean, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("%w: %s %s returned http code %d",
			domain.ErrEndpointUnavailable, req.Type, req.MBean, res.StatusCode())
	}

	var body response
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrRemoteOperation, err)
	}
	if body.Status != http.StatusOK {
		return nil, &RemoteError{Status: body.Status, Type: body.ErrorType, Message: body.Error}
	}
	return body.Value, nil
}
