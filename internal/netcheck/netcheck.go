// Package netcheck answers the splash screen's "are we online" question.
package netcheck

import (
	"context"
	"net"
	"time"

	"github.com/afrotie/ethio/internal/logger"
)

// Checker reports connectivity. Implementations never return errors; an
// unreachable network is simply offline.
type Checker interface {
	Online(ctx context.Context) bool
}

// Dialer is the subset of net.Dialer a Prober uses
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Prober dials a well-known TCP endpoint
type Prober struct {
	Address string
	Timeout time.Duration
	Dialer  Dialer
	log     *logger.Logger
}

// NewProber returns a prober for address with the given dial timeout
func NewProber(address string, timeout time.Duration, log *logger.Logger) *Prober {
	if log == nil {
		log = logger.Discard()
	}
	return &Prober{
		Address: address,
		Timeout: timeout,
		Dialer:  &net.Dialer{},
		log:     log.WithComponent("netcheck"),
	}
}

// Online dials the probe address and reports whether it answered
func (p *Prober) Online(ctx context.Context) bool {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	started := time.Now()
	conn, err := p.Dialer.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		p.log.WarnWithFields("connectivity probe failed", []logger.Field{
			logger.F("address", p.Address),
			logger.Duration(time.Since(started)),
			logger.Error(err),
		})
		return false
	}
	_ = conn.Close()

	p.log.DebugWithFields("connectivity probe succeeded", []logger.Field{
		logger.F("address", p.Address),
		logger.Duration(time.Since(started)),
	})
	return true
}

// Static always reports the same answer. Static(false) backs --offline.
type Static bool

// Online returns the fixed answer
func (s Static) Online(context.Context) bool {
	return bool(s)
}
