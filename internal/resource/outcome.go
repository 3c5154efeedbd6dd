package resource

import (
	"errors"
	"net/http"
)

type Op string

const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpEdit   Op = "edit"
	OpView   Op = "view"
)

type Kind string

const (
	KindOK        Kind = "ok"
	KindTransport Kind = "transport"
	KindStatus    Kind = "status"
	KindNotFound  Kind = "not_found"
	KindStale     Kind = "stale"
	KindBusy      Kind = "busy"
	KindReadOnly  Kind = "read_only"
)

// Outcome is the result of one controller operation. Nothing a controller
// does returns a Go error; failures are carried here instead.
type Outcome struct {
	Op     Op
	Kind   Kind
	Status int
	Err    error
}

func (o Outcome) OK() bool { return o.Kind == KindOK }

// Failed reports outcomes that belong in the table's error banner.
func (o Outcome) Failed() bool {
	return o.Kind == KindTransport || o.Kind == KindStatus
}

func (o Outcome) Message() string {
	what := map[Op]string{
		OpLoad:   "Could not load the list",
		OpCreate: "Could not create the record",
		OpUpdate: "Could not save changes",
		OpDelete: "Could not delete the record",
	}[o.Op]
	if what == "" {
		what = "Request failed"
	}
	switch o.Kind {
	case KindTransport:
		return what + ": the backend is unreachable."
	case KindStatus:
		return what + ": the backend answered " + http.StatusText(o.Status) + "."
	case KindBusy:
		return "Another change is still in progress."
	case KindNotFound:
		return "That record no longer exists."
	case KindStale:
		return "That form is no longer open. Reopen it and try again."
	}
	return ""
}

type statusCoder interface{ StatusCode() int }

// classify maps a backend error to an Outcome. Errors exposing StatusCode
// are status failures (404 is not_found); everything else is transport.
func classify(op Op, err error) Outcome {
	if err == nil {
		return Outcome{Op: op, Kind: KindOK}
	}
	var sc statusCoder
	if errors.As(err, &sc) {
		if sc.StatusCode() == http.StatusNotFound {
			return Outcome{Op: op, Kind: KindNotFound, Status: http.StatusNotFound, Err: err}
		}
		return Outcome{Op: op, Kind: KindStatus, Status: sc.StatusCode(), Err: err}
	}
	return Outcome{Op: op, Kind: KindTransport, Err: err}
}
