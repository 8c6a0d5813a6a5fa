package publish

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/rulesmith/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultTimeout bounds a whole publication when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config describes where and how a report is published.
type Config struct {
	// URL is the socket.io endpoint, e.g. "http://localhost:3000/socket.io/".
	URL       string `yaml:"url"`
	Namespace string `yaml:"namespace"`
	// Event is the event the report is emitted as.
	Event string `yaml:"event"`
	// AckEvent, if set, is an event the server sends back once it has
	// accepted the report. Publish waits for it.
	AckEvent           string        `yaml:"ack_event"`
	Timeout            time.Duration `yaml:"timeout"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify"`
}

// Enabled reports whether a URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// Validate checks the configuration before a connection is attempted.
func (c Config) Validate() error {
	if !c.Enabled() {
		return nil
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid publish URL: %w", err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("invalid publish URL %q: scheme must be http, https, ws or wss", c.URL)
	}
	if c.Event == "" {
		return errors.New("publish event cannot be empty")
	}
	return nil
}

// opResult is a private struct to safely pass results through the done channel.
type opResult struct {
	ack any
	err error
}

// Publisher emits payloads to a socket.io server.
type Publisher struct {
	cfg Config
}

// New creates a Publisher. cfg must be valid.
func New(cfg Config) *Publisher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "/"
	}
	return &Publisher{cfg: cfg}
}

// Publish connects, emits payload as the configured event and disconnects.
// payload is sent as plain JSON data. The returned value is the first
// argument of the acknowledgement event, or nil without one.
func (p *Publisher) Publish(ctx context.Context, payload any) (any, error) {
	cfg := p.cfg
	logger := ctxlog.FromContext(ctx).With("url", cfg.URL, "namespace", cfg.Namespace, "event", cfg.Event)
	logger.Debug("Publishing report.")

	data, err := toJSONValue(payload)
	if err != nil {
		return nil, err
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	opCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(res opResult) {
		select {
		case done <- res:
		default:
		}
	}

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Connected", "sid", io.Id())
		io.Emit(cfg.Event, data)
		logger.Info("Report published.")
		if cfg.AckEvent == "" {
			finish(opResult{})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := errors.New("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		finish(opResult{err: err})
	})

	if cfg.AckEvent != "" {
		io.On(types.EventName(cfg.AckEvent), func(args ...any) {
			var ack any
			if len(args) > 0 {
				ack = args[0]
			}
			finish(opResult{ack: ack})
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", cfg.AckEvent)
		}
		return nil, errors.New("timed out while waiting for initial connection")
	case res := <-done:
		return res.ack, res.err
	}
}

// toJSONValue turns payload into the maps, slices and scalars the socket.io
// encoder expects.
func toJSONValue(payload any) (any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	return out, nil
}
