// Package viewer is the result viewer's state machine. It owns the current
// criteria, pagination and fetch status, and decides which fetch to issue.
// Front ends feed it user events and fetch results and render its State;
// it performs no I/O itself.
package viewer

import (
	"github.com/nakkarenukadevi/mbbs-ui/internal/models"
)

// Status is the result viewer's lifecycle state
type Status int

const (
	// StatusRedirecting means no criteria was handed over; terminal
	StatusRedirecting Status = iota
	StatusLoading
	StatusError
	StatusEmpty
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusRedirecting:
		return "redirecting"
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusEmpty:
		return "empty"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Request is a fetch the front end must perform
type Request struct {
	Generation uint64
	Criteria   models.FilterCriteria
	Query      models.PageQuery
}

// Result is the outcome of performing a Request
type Result struct {
	Generation uint64
	Page       models.ResultPage
	Err        error
}

// State is a snapshot of the viewer
type State struct {
	Status   Status
	Criteria models.FilterCriteria
	Query    models.PageQuery
	Page     models.ResultPage
	Err      error
}

// TotalPages returns the page count of the last successful fetch
func (s State) TotalPages() int {
	return s.Page.TotalPages(s.Query.PageSize)
}

// Viewer drives the fetch state machine. It is not safe for concurrent use;
// it is owned by a single UI context.
type Viewer struct {
	state      State
	generation uint64
	mounted    bool
}

// New returns an unmounted viewer
func New() *Viewer {
	return &Viewer{}
}

// Mount hands the viewer its criteria. A nil criteria puts the viewer in
// StatusRedirecting and no fetch is requested; otherwise the first fetch
// for q is returned.
func (v *Viewer) Mount(criteria *models.FilterCriteria, q models.PageQuery) *Request {
	v.mounted = true
	v.state = State{Query: q.Normalize()}
	if criteria == nil {
		v.state.Status = StatusRedirecting
		return nil
	}
	v.state.Criteria = criteria.Clone()
	return v.load()
}

// SetPage moves to page n. Selecting the current page, or a page outside
// the known range, requests nothing.
func (v *Viewer) SetPage(n int) *Request {
	if !v.active() || n == v.state.Query.PageNumber {
		return nil
	}
	if n < 1 || n > v.state.TotalPages() {
		return nil
	}
	v.state.Query.PageNumber = n
	return v.load()
}

// NextPage moves one page forward
func (v *Viewer) NextPage() *Request {
	return v.SetPage(v.state.Query.PageNumber + 1)
}

// PrevPage moves one page back
func (v *Viewer) PrevPage() *Request {
	return v.SetPage(v.state.Query.PageNumber - 1)
}

// SetPageSize changes the page size and goes back to the first page so the
// next fetch never asks for a page beyond the new range
func (v *Viewer) SetPageSize(size int) *Request {
	if !v.active() || !models.IsValidPageSize(size) || size == v.state.Query.PageSize {
		return nil
	}
	v.state.Query = models.PageQuery{PageNumber: 1, PageSize: size}
	return v.load()
}

// Retry re-issues the fetch for the current parameters after a failure
func (v *Viewer) Retry() *Request {
	if !v.active() || v.state.Status != StatusError {
		return nil
	}
	return v.load()
}

// Resolve applies a fetch result. Results from superseded requests are
// discarded and Resolve reports false.
func (v *Viewer) Resolve(r Result) bool {
	if !v.active() || r.Generation != v.generation || v.state.Status != StatusLoading {
		return false
	}

	switch {
	case r.Err != nil:
		v.state.Status = StatusError
		v.state.Err = r.Err
		// Rows are dropped; the known total keeps page bounds for a retry
		v.state.Page = models.ResultPage{Total: v.state.Page.Total}
	case r.Page.IsEmpty():
		v.state.Status = StatusEmpty
		v.state.Err = nil
		v.state.Page = r.Page
	default:
		v.state.Status = StatusReady
		v.state.Err = nil
		v.state.Page = r.Page
	}
	return true
}

// State returns a snapshot of the current state
func (v *Viewer) State() State {
	return v.state
}

// Generation returns the generation of the latest request
func (v *Viewer) Generation() uint64 {
	return v.generation
}

func (v *Viewer) active() bool {
	return v.mounted && v.state.Status != StatusRedirecting
}

// load enters StatusLoading and supersedes any request in flight. The last
// page count is kept so pagination stays usable while loading.
func (v *Viewer) load() *Request {
	v.generation++
	v.state.Status = StatusLoading
	v.state.Err = nil
	return &Request{
		Generation: v.generation,
		Criteria:   v.state.Criteria.Clone(),
		Query:      v.state.Query,
	}
}
