package resource

import "pizzadmin/internal/domain"

// SkeletonRows is how many placeholder rows a table shows while loading.
const SkeletonRows = 5

type Phase string

const (
	Idle     Phase = "idle"
	Loading  Phase = "loading"
	Loaded   Phase = "loaded"
	Mutating Phase = "mutating"
)

// State is everything one resource table knows. Transitions are pure
// methods returning the next State; Controller serialises them.
type State[T Record] struct {
	Items      []T
	IsLoading  bool
	IsMutating bool
	HasLoaded  bool

	// Err is the last failed outcome shown as the table banner.
	Err *Outcome

	ModalOpen bool
	// Target is the record being edited; nil while creating.
	Target *T
	// Detail is the record shown read-only in the modal.
	Detail *T
	Draft  domain.Draft

	issued uint64
}

func (s State[T]) Phase() Phase {
	switch {
	case s.IsMutating:
		return Mutating
	case s.IsLoading:
		return Loading
	case s.HasLoaded:
		return Loaded
	}
	return Idle
}

// Editing reports update mode: the modal is open on an existing record.
func (s State[T]) Editing() bool { return s.ModalOpen && s.Target != nil }

func (s State[T]) find(key string) (T, bool) {
	for _, it := range s.Items {
		if it.Key() == key {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s State[T]) beginLoad() (State[T], uint64) {
	s.issued++
	s.IsLoading = true
	return s, s.issued
}

// finishLoad applies a fetch result unless a newer fetch has been issued
// since token was handed out. Failures keep the previous items.
func (s State[T]) finishLoad(token uint64, items []T, err error) (State[T], Outcome) {
	if token < s.issued {
		return s, Outcome{Op: OpLoad, Kind: KindStale}
	}
	s.IsLoading = false
	s.HasLoaded = true
	out := classify(OpLoad, err)
	if out.Kind == KindNotFound {
		out.Kind = KindStatus
	}
	if !out.OK() {
		s.Err = &out
		return s, out
	}
	s.Items = append(make([]T, 0, len(items)), items...)
	if s.Err != nil && s.Err.Op == OpLoad {
		s.Err = nil
	}
	return s, out
}

// submits reports whether a form opened for key still matches the modal:
// it must be open, in create mode for "" and on the same record otherwise.
func (s State[T]) submits(key string) bool {
	if !s.ModalOpen || s.Detail != nil {
		return false
	}
	if s.Target == nil {
		return key == ""
	}
	return (*s.Target).Key() == key
}

func (s State[T]) beginMutation() (State[T], bool) {
	if s.IsMutating {
		return s, false
	}
	s.IsMutating = true
	s.Err = nil
	return s, true
}

func (s State[T]) finishMutation(out Outcome) State[T] {
	s.IsMutating = false
	if out.Failed() {
		s.Err = &out
	}
	return s
}

func (s State[T]) openCreate() State[T] {
	s.ModalOpen = true
	s.Target = nil
	s.Detail = nil
	s.Draft = domain.Draft{Fields: map[string]string{}}
	return s
}

func (s State[T]) openEdit(key string, draftOf func(T) domain.Draft) (State[T], Outcome) {
	rec, ok := s.find(key)
	if !ok {
		return s, Outcome{Op: OpEdit, Kind: KindNotFound}
	}
	s.ModalOpen = true
	s.Target = &rec
	s.Detail = nil
	s.Draft = draftOf(rec)
	return s, Outcome{Op: OpEdit, Kind: KindOK}
}

func (s State[T]) openDetail(key string) (State[T], Outcome) {
	rec, ok := s.find(key)
	if !ok {
		return s, Outcome{Op: OpView, Kind: KindNotFound}
	}
	s.ModalOpen = true
	s.Target = nil
	s.Detail = &rec
	s.Draft = domain.Draft{}
	return s, Outcome{Op: OpView, Kind: KindOK}
}

func (s State[T]) closeModal() State[T] {
	s.ModalOpen = false
	s.Target = nil
	s.Detail = nil
	s.Draft = domain.Draft{}
	return s
}

// copy detaches the snapshot from slices and pointers the controller owns.
func (s State[T]) copy() State[T] {
	s.Items = append(make([]T, 0, len(s.Items)), s.Items...)
	if s.Target != nil {
		t := *s.Target
		s.Target = &t
	}
	if s.Detail != nil {
		d := *s.Detail
		s.Detail = &d
	}
	if s.Err != nil {
		e := *s.Err
		s.Err = &e
	}
	s.Draft = s.Draft.Clone()
	return s
}
