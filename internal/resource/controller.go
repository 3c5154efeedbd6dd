// Package resource holds the list/detail/edit controller shared by every
// admin table.
package resource

import (
	"context"
	"sync"

	"pizzadmin/internal/domain"
	applog "pizzadmin/internal/log"
)

// Record is a fetched backend row identified by a stable key.
type Record interface {
	Key() string
}

type Source[T Record] interface {
	List(ctx context.Context) ([]T, error)
}

type Mutator interface {
	Create(ctx context.Context, d domain.Draft) error
	Update(ctx context.Context, id string, d domain.Draft) error
	Delete(ctx context.Context, id string) error
}

// Controller drives one resource table. It never holds its lock across a
// backend call.
type Controller[T Record] struct {
	name    string
	src     Source[T]
	mut     Mutator
	draftOf func(T) domain.Draft

	mu    sync.Mutex
	state State[T]
}

// New builds a controller. mut and draftOf may be nil for read-only
// resources.
func New[T Record](name string, src Source[T], mut Mutator, draftOf func(T) domain.Draft) *Controller[T] {
	return &Controller[T]{name: name, src: src, mut: mut, draftOf: draftOf}
}

func (c *Controller[T]) Name() string { return c.name }

func (c *Controller[T]) ReadOnly() bool { return c.mut == nil }

// Snapshot returns a copy of the current state for rendering.
func (c *Controller[T]) Snapshot() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.copy()
}

func (c *Controller[T]) apply(fn func(State[T]) State[T]) {
	c.mu.Lock()
	c.state = fn(c.state)
	c.mu.Unlock()
}

// Refresh fetches the full list. Only the newest issued fetch is applied.
func (c *Controller[T]) Refresh(ctx context.Context) Outcome {
	c.mu.Lock()
	var token uint64
	c.state, token = c.state.beginLoad()
	c.mu.Unlock()

	items, err := c.src.List(ctx)

	c.mu.Lock()
	var out Outcome
	c.state, out = c.state.finishLoad(token, items, err)
	c.mu.Unlock()

	c.report(out, "")
	return out
}

func (c *Controller[T]) OpenCreate() Outcome {
	if c.mut == nil {
		return Outcome{Op: OpCreate, Kind: KindReadOnly}
	}
	c.apply(State[T].openCreate)
	return Outcome{Op: OpCreate, Kind: KindOK}
}

func (c *Controller[T]) OpenEdit(key string) Outcome {
	if c.mut == nil || c.draftOf == nil {
		return Outcome{Op: OpEdit, Kind: KindReadOnly}
	}
	c.mu.Lock()
	var out Outcome
	c.state, out = c.state.openEdit(key, c.draftOf)
	c.mu.Unlock()
	c.report(out, key)
	return out
}

func (c *Controller[T]) OpenDetail(key string) Outcome {
	c.mu.Lock()
	var out Outcome
	c.state, out = c.state.openDetail(key)
	c.mu.Unlock()
	c.report(out, key)
	return out
}

// Close discards the draft and editing target without touching the backend.
func (c *Controller[T]) Close() {
	c.apply(State[T].closeModal)
}

// SetDraft replaces the pending form values.
func (c *Controller[T]) SetDraft(fields map[string]string, file *domain.Upload) {
	d := domain.Draft{Fields: map[string]string{}, File: file}
	for k, v := range fields {
		d.Fields[k] = v
	}
	c.apply(func(s State[T]) State[T] {
		s.Draft = d
		return s
	})
}

// Submit inserts the draft when there is no editing target, otherwise
// replaces the target by id. key is the record id the submitted form was
// opened for ("" for a create form); a form that no longer matches the open
// modal is refused with KindStale and never reaches the backend. Whatever
// the backend says, the modal is closed and the list refetched. A submit
// while another mutation is in flight is dropped with KindBusy.
func (c *Controller[T]) Submit(ctx context.Context, key string) Outcome {
	op := OpCreate
	if key != "" {
		op = OpUpdate
	}
	if c.mut == nil {
		return Outcome{Op: op, Kind: KindReadOnly}
	}
	c.mu.Lock()
	next, ok := c.state.beginMutation()
	if !ok {
		c.mu.Unlock()
		out := Outcome{Op: op, Kind: KindBusy}
		c.report(out, key)
		return out
	}
	if !c.state.submits(key) {
		out := Outcome{Op: op, Kind: KindStale}
		c.state = c.state.closeModal()
		c.state.Err = &out
		c.mu.Unlock()
		c.report(out, key)
		return out
	}
	draft := c.state.Draft.Clone()
	c.state = next
	c.mu.Unlock()

	var err error
	if op == OpCreate {
		err = c.mut.Create(ctx, draft)
	} else {
		err = c.mut.Update(ctx, key, draft)
	}
	out := classify(op, err)
	if op == OpUpdate && out.Kind == KindNotFound {
		out.Kind = KindStatus
	}
	c.settle(ctx, out, key, true)
	return out
}

// Delete removes a record by key and refetches. A 404 from the backend is
// treated as already deleted.
func (c *Controller[T]) Delete(ctx context.Context, key string) Outcome {
	if c.mut == nil {
		return Outcome{Op: OpDelete, Kind: KindReadOnly}
	}
	c.mu.Lock()
	next, ok := c.state.beginMutation()
	if !ok {
		c.mu.Unlock()
		out := Outcome{Op: OpDelete, Kind: KindBusy}
		c.report(out, key)
		return out
	}
	c.state = next
	c.mu.Unlock()

	out := classify(OpDelete, c.mut.Delete(ctx, key))
	c.settle(ctx, out, key, false)
	return out
}

func (c *Controller[T]) settle(ctx context.Context, out Outcome, key string, closeModal bool) {
	c.apply(func(s State[T]) State[T] {
		s = s.finishMutation(out)
		if closeModal {
			s = s.closeModal()
		}
		return s
	})
	c.report(out, key)
	c.Refresh(ctx)
}

func (c *Controller[T]) report(out Outcome, key string) {
	action := "resource." + c.name + "." + string(out.Op)
	fields := map[string]any{"kind": string(out.Kind)}
	if key != "" {
		fields["id"] = key
	}
	if out.Status != 0 {
		fields["status"] = out.Status
	}
	switch out.Kind {
	case KindOK:
	case KindTransport, KindStatus:
		applog.Error(nil, action+".fail", out.Err, fields)
	default:
		applog.Info(nil, action+"."+string(out.Kind), fields)
	}
}
