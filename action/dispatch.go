package action

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/aerissecure/chatedit"
)

// Outcome reports what applying one action did. On anything but
// StatusApplied, Data is the snapshot the action was applied to.
type Outcome struct {
	Type        Type
	Status      Status
	Data        chatedit.Snapshot
	Changes     []chatedit.Change
	Highlight   []string // distinct refs of Changes, for transient display
	RemovedRows []int
	NewColumns  []int
	Description string
	Err         error
}

// Changed reports whether the action produced any cell change.
func (o Outcome) Changed() bool { return len(o.Changes) > 0 }

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// Dispatcher validates actions and routes them to their handler.
type Dispatcher struct {
	handlers map[Type]handler
	logger   *slog.Logger
}

func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: handlers,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Supports reports whether t has a handler.
func (d *Dispatcher) Supports(t Type) bool {
	_, ok := d.handlers[t]
	return ok
}

// Validate checks the payload shape of a without touching any snapshot.
// The returned error is an *Error.
func (d *Dispatcher) Validate(a Action) error {
	h, ok := d.handlers[a.Type]
	if !ok {
		return newError(Unimplemented, a.Type, "action type is not supported")
	}
	if a.Status == StatusApplied {
		return newError(FailedPrecondition, a.Type, "action was already applied")
	}
	if err := h.check(a); err != nil {
		return newError(InvalidArgument, a.Type, "%v", err)
	}
	return nil
}

// Apply validates a and, if it is well formed, applies it to s. s itself
// is never modified.
func (d *Dispatcher) Apply(s chatedit.Snapshot, a Action) (out Outcome) {
	out = Outcome{Type: a.Type, Data: s}
	log := d.logger.With("action", a.Type, "target", a.Target.String())

	if err := d.Validate(a); err != nil {
		out.Err = err
		out.Status = StatusRejected
		out.Description = "Invalid action"
		var e *Error
		if errors.As(err, &e) && e.Code == Unimplemented {
			out.Status = StatusNotImplemented
			out.Description = fmt.Sprintf("%s is not implemented", a.Type)
		}
		log.Warn("action.rejected", "status", out.Status, "error", err.Error())
		return out
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("action.panic", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			out = Outcome{
				Type:        a.Type,
				Status:      StatusFailed,
				Data:        s,
				Description: "Something went wrong applying the action",
				Err:         newError(Internal, a.Type, "%v", r),
			}
		}
	}()

	res, desc, err := d.handlers[a.Type].run(s, a)
	if err != nil {
		out.Status = StatusRejected
		out.Err = newError(InvalidArgument, a.Type, "%v", err)
		log.Warn("action.rejected", "error", err.Error())
		return out
	}

	out.Status = StatusApplied
	out.Data = res.Data
	out.Changes = res.Changes
	out.Highlight = highlight(res.Changes)
	out.RemovedRows = res.RemovedRows
	out.NewColumns = res.NewColumns
	out.Description = desc
	log.Debug("action.applied", "changes", len(res.Changes), "description", desc)
	return out
}

func highlight(changes []chatedit.Change) []string {
	seen := make(map[string]bool, len(changes))
	var out []string
	for _, c := range changes {
		if !seen[c.Ref] {
			seen[c.Ref] = true
			out = append(out, c.Ref)
		}
	}
	return out
}
