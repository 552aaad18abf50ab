// Package controller owns a client session and runs its operations against
// the relay.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/ds124wfegd/animegen/internal/entity"
	"github.com/ds124wfegd/animegen/internal/pkg/datauri"
	"github.com/ds124wfegd/animegen/internal/session"
)

// Relay is the transform endpoint as seen from the client.
type Relay interface {
	Generate(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error)
}

type Controller struct {
	mu    sync.Mutex
	state session.State
	relay Relay
}

func New(relay Relay) *Controller {
	return &Controller{relay: relay}
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) apply(ev session.Event) (session.State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, changed := session.Apply(c.state, ev)
	c.state = next
	return next, changed
}

// Select reads the image at path and makes it the session's original. An
// empty path means nothing was chosen and leaves the session untouched.
func (c *Controller) Select(path string) error {
	if path == "" {
		return nil
	}
	payload, err := datauri.FromFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}
	c.SelectPayload(payload)
	return nil
}

func (c *Controller) SelectPayload(p entity.Payload) {
	c.apply(session.Select{Payload: p})
}

// Reset returns the session to Idle.
func (c *Controller) Reset() {
	c.apply(session.Reset{})
}

// Pending is a transform that has been started but not settled.
type Pending struct {
	c     *Controller
	seq   uint64
	image entity.Payload
}

// StartGenerate moves the session to Transforming. It reports false when
// there is no original or a transform is already running.
func (c *Controller) StartGenerate() (*Pending, bool) {
	next, changed := c.apply(session.Generate{})
	if !changed {
		return nil, false
	}
	return &Pending{c: c, seq: next.Seq(), image: next.Original()}, true
}

// Resolve calls the relay and settles the session. The session never stays
// in Transforming once Resolve returns, even if the relay call panics.
func (p *Pending) Resolve(ctx context.Context) (resp entity.GenerateResponse, err error) {
	settled := false
	defer func() {
		if !settled {
			p.c.apply(session.Fail{Seq: p.seq, Message: entity.MsgGenericFailure})
		}
	}()

	resp, err = p.c.relay.Generate(ctx, p.image)
	switch {
	case err != nil:
		p.c.apply(session.Fail{Seq: p.seq, Message: err.Error()})
	case resp.Output.Empty():
		err = fmt.Errorf("relay returned no image: %w", entity.ErrInvalidPayload)
		p.c.apply(session.Fail{Seq: p.seq, Message: entity.MsgGenericFailure})
	default:
		p.c.apply(session.Succeed{Seq: p.seq, Output: resp.Output})
	}
	settled = true
	return resp, err
}

// Generate is StartGenerate followed by Resolve. It is a no-op without an
// original image.
func (c *Controller) Generate(ctx context.Context) (entity.GenerateResponse, error) {
	pending, ok := c.StartGenerate()
	if !ok {
		return entity.GenerateResponse{}, nil
	}
	return pending.Resolve(ctx)
}
