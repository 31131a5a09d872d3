package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/headsup/internal/betting"
)

// TimedProvider bounds how long an inner provider may take. On timeout it
// checks when that is legal and folds otherwise; a call-off prompt that
// times out is declined.
type TimedProvider struct {
	inner   DecisionProvider
	timeout time.Duration
	clock   quartz.Clock
	logger  *log.Logger
}

// NewTimedProvider wraps inner. A non-positive timeout disables the bound.
func NewTimedProvider(inner DecisionProvider, timeout time.Duration, clock quartz.Clock, logger *log.Logger) *TimedProvider {
	return &TimedProvider{
		inner:   inner,
		timeout: timeout,
		clock:   clock,
		logger:  logger.WithPrefix("timeout"),
	}
}

type decision struct {
	action betting.Action
	ok     bool
	err    error
}

func (p *TimedProvider) Decide(ctx context.Context, req DecisionRequest) (betting.Action, error) {
	if p.timeout <= 0 {
		return p.inner.Decide(ctx, req)
	}
	d, timedOut := p.wait(ctx, func(ctx context.Context) decision {
		a, err := p.inner.Decide(ctx, req)
		return decision{action: a, err: err}
	})
	if timedOut {
		a := req.Passive()
		p.logger.Warn("Decision timed out", "hand", req.HandID, "seat", req.Seat, "after", p.timeout, "action", a)
		return a, nil
	}
	return d.action, d.err
}

func (p *TimedProvider) CallOff(ctx context.Context, req CallOffRequest) (bool, error) {
	if p.timeout <= 0 {
		return callOff(ctx, p.inner, req)
	}
	d, timedOut := p.wait(ctx, func(ctx context.Context) decision {
		ok, err := callOff(ctx, p.inner, req)
		return decision{ok: ok, err: err}
	})
	if timedOut {
		p.logger.Warn("Call-off timed out, declining", "hand", req.HandID, "after", p.timeout)
		return false, nil
	}
	return d.ok, d.err
}

// wait runs fn until it returns, the timeout fires or ctx is done. The inner
// call sees a context that is cancelled as soon as wait returns.
func (p *TimedProvider) wait(ctx context.Context, fn func(context.Context) decision) (decision, bool) {
	innerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := p.clock.AfterFunc(p.timeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	done := make(chan decision, 1)
	go func() {
		done <- fn(innerCtx)
	}()

	select {
	case d := <-done:
		return d, false
	case <-timeoutFired:
		return decision{}, true
	case <-ctx.Done():
		return decision{err: ctx.Err()}, false
	}
}
