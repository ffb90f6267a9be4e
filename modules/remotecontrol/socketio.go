package remotecontrol

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/specialistvlad/stagegrid/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// ErrConnectTimeout is returned when the server does not accept the
// connection within Options.Timeout.
var ErrConnectTimeout = errors.New("timed out waiting for connection")

// ErrConnectRefused is returned when the server rejects the connection.
var ErrConnectRefused = errors.New("connection refused by server")

// Conn is an open remote control connection.
type Conn interface {
	Close()
}

// Dialer opens a connection and arranges for every payload of opts.Event to
// be passed to onValue. It blocks until connected or failed.
type Dialer func(ctx context.Context, opts Options, onValue func(any)) (Conn, error)

type socketConn struct {
	io *socket.Socket
}

func (c *socketConn) Close() { c.io.Disconnect() }

// DialSocketIO connects to a socket.io server over WebSocket.
func DialSocketIO(ctx context.Context, opts Options, onValue func(any)) (Conn, error) {
	logger := ctxlog.FromContext(ctx).With("url", opts.URL, "namespace", opts.Namespace, "event", opts.Event)

	parsedURL, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("URL '%s' needs a scheme and host", opts.URL)
	}

	sopts := socket.DefaultOptions()
	sopts.SetPath(parsedURL.Path)
	if opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		sopts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	sopts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, sopts)
	io := manager.Socket(opts.Namespace, sopts)

	connected := make(chan error, 1)
	io.Once(types.EventName("connect"), func(...any) {
		logger.Info("Remote control connected.", "sid", io.Id())
		signal(connected, nil)
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		signal(connected, connectError(errs...))
	})
	io.On(types.EventName(opts.Event), func(data ...any) {
		var payload any
		if len(data) > 0 {
			payload = data[0]
		}
		logger.Debug("Remote control value received.")
		onValue(payload)
	})

	logger.Debug("Initiating connection.")
	io.Connect()

	timer := time.NewTimer(opts.Timeout)
	defer timer.Stop()
	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return &socketConn{io: io}, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, ctx.Err()
	case <-timer.C:
		io.Disconnect()
		return nil, fmt.Errorf("%w after %s", ErrConnectTimeout, opts.Timeout)
	}
}

func signal(ch chan<- error, err error) {
	select {
	case ch <- err:
	default:
	}
}

// connectError turns the arguments of a connect_error event into an error.
// The event may arrive without arguments.
func connectError(args ...any) error {
	if len(args) == 0 {
		return ErrConnectRefused
	}
	if err, ok := args[0].(error); ok && err != nil {
		return err
	}
	return fmt.Errorf("%w: %v", ErrConnectRefused, args[0])
}
