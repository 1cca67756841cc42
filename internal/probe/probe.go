// Package probe checks that the transport selected by a resolved
// configuration is reachable: a TCP connect for Network, an open of the
// device for Serial. It does not speak the AT protocol.
package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"time"

	"go.bug.st/serial"
	"go.uber.org/zap"

	"github.com/eugenenazirov/at-webserver/internal/config"
)

// ErrUnsupportedConnection indicates a connection type the prober cannot check.
var ErrUnsupportedConnection = errors.New("unsupported connection type")

// SerialOpener opens a serial device.
type SerialOpener func(port string, mode *serial.Mode) (io.Closer, error)

func openSerial(port string, mode *serial.Mode) (io.Closer, error) {
	return serial.Open(port, mode)
}

// Option configures a Prober.
type Option func(*Prober)

// WithSerialOpener overrides serial.Open, primarily for tests.
func WithSerialOpener(open SerialOpener) Option {
	return func(p *Prober) {
		if open != nil {
			p.openSerial = open
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Prober) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Result describes a successful probe.
type Result struct {
	ConnectionType config.ConnectionType
	Target         string
	Elapsed        time.Duration
}

// Prober checks transport reachability.
type Prober struct {
	openSerial SerialOpener
	logger     *zap.Logger
	clock      func() time.Time
}

// New constructs a Prober.
func New(opts ...Option) *Prober {
	p := &Prober{
		openSerial: openSerial,
		logger:     zap.NewNop(),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check probes the transport selected by at.ConnectionType, bounded by that
// transport's configured timeout.
func (p *Prober) Check(ctx context.Context, at config.AtConfig) (Result, error) {
	start := p.clock()

	var (
		target string
		err    error
	)
	switch at.ConnectionType {
	case config.Network:
		target, err = p.checkNetwork(ctx, at.Network)
	case config.Serial:
		target, err = p.checkSerial(ctx, at.Serial)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedConnection, at.ConnectionType)
	}
	if err != nil {
		return Result{}, err
	}

	res := Result{
		ConnectionType: at.ConnectionType,
		Target:         target,
		Elapsed:        p.clock().Sub(start),
	}
	p.logger.Info("transport reachable",
		zap.Stringer("connection_type", res.ConnectionType),
		zap.String("target", res.Target),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func (p *Prober) checkNetwork(ctx context.Context, cfg config.NetworkConfig) (string, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(int(cfg.Port)))

	if timeout := cfg.Duration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return addr, fmt.Errorf("dial %s: %w", addr, err)
	}
	_ = conn.Close()
	return addr, nil
}

type openResult struct {
	port io.Closer
	err  error
}

func (p *Prober) checkSerial(ctx context.Context, cfg config.SerialConfig) (string, error) {
	target := fmt.Sprintf("%s@%d", cfg.Port, cfg.Baudrate)
	if err := ctx.Err(); err != nil {
		return target, err
	}

	if timeout := cfg.Duration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	// serial.Open has no context; a port that opens after the deadline is
	// closed by the opening goroutine.
	done := make(chan openResult, 1)
	abandoned := make(chan struct{})
	go func() {
		port, err := p.openSerial(cfg.Port, &serial.Mode{BaudRate: int(cfg.Baudrate)})
		select {
		case done <- openResult{port: port, err: err}:
		case <-abandoned:
			if err == nil {
				_ = port.Close()
			}
		}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return target, fmt.Errorf("open serial %s: %w", cfg.Port, res.err)
		}
		_ = res.port.Close()
		return target, nil
	case <-ctx.Done():
		close(abandoned)
		return target, fmt.Errorf("open serial %s: %w", cfg.Port, ctx.Err())
	}
}
