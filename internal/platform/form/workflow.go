package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"scopdash/internal/platform/clock"
	apperrors "scopdash/internal/platform/errors"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateValidating
	StateSaving
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateValidating:
		return "validating"
	case StateSaving:
		return "saving"
	case StateSuccess:
		return "success"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SaveFunc persists validated values. ctx is cancelled when the workflow is
// cancelled while the save is in flight.
type SaveFunc func(ctx context.Context, values Values) error

type Config struct {
	Title       string
	Description string
	Fields      []Field
	Initial     Values
	Save        SaveFunc
}

// View is an immutable snapshot of the workflow for renderers.
type View struct {
	State       State
	Title       string
	Description string
	Fields      []Field
	Values      Values
	Errors      Errors
	General     string
}

// Workflow drives one edit form at a time.
type Workflow struct {
	mu           sync.Mutex
	clock        clock.Clock
	successDelay time.Duration

	state   State
	cfg     Config
	values  Values
	errs    Errors
	general string
	gen     uint64
	cancel  context.CancelFunc
	timer   clock.Timer
}

func NewWorkflow(clk clock.Clock, successDelay time.Duration) *Workflow {
	return &Workflow{clock: clk, successDelay: successDelay, state: StateClosed}
}

// Open starts editing from cfg.Initial. Opening over an open or finished form
// discards it; opening while a save is in flight fails.
func (w *Workflow) Open(cfg Config) error {
	if cfg.Save == nil {
		return fmt.Errorf("%w: save callback is required", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(cfg.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrInvalidInput)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == StateSaving {
		return apperrors.ErrWorkflowBusy
	}
	w.resetLocked()
	w.cfg = cfg
	w.cfg.Fields = append([]Field(nil), cfg.Fields...)
	w.values = cfg.Initial.Clone()
	w.errs = Errors{}
	w.state = StateOpen
	return nil
}

// Set records a value typed by the user and clears that field's error.
func (w *Workflow) Set(key, value string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateOpen {
		return apperrors.ErrWorkflowClosed
	}
	if !w.hasField(key) {
		return fmt.Errorf("%w: unknown field %q", apperrors.ErrInvalidInput, key)
	}
	w.values[key] = value
	delete(w.errs, key)
	return nil
}

// Submit validates the current values and, when they pass, calls the save
// callback. Field errors come back as *ValidationError and a save failure is
// returned as is; both leave the form open.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.state != StateOpen {
		w.mu.Unlock()
		return apperrors.ErrWorkflowClosed
	}
	w.state = StateValidating
	errs := Validate(w.cfg.Fields, w.values)
	if len(errs) > 0 {
		w.errs = errs
		w.general = ""
		w.state = StateOpen
		w.mu.Unlock()
		return &ValidationError{Fields: errs}
	}

	w.errs = Errors{}
	w.general = ""
	w.state = StateSaving
	saveCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	gen := w.gen
	save := w.cfg.Save
	values := w.values.Clone()
	w.mu.Unlock()

	err := save(saveCtx, values)
	cancel()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen != gen {
		return apperrors.ErrSaveCancelled
	}
	w.cancel = nil
	if err != nil {
		w.state = StateOpen
		w.general = err.Error()
		return err
	}
	w.state = StateSuccess
	w.timer = w.clock.AfterFunc(w.successDelay, func() { w.closeAfterSuccess(gen) })
	return nil
}

// Cancel closes the form from any state without saving. An in-flight save
// sees its context cancelled and its result is discarded.
func (w *Workflow) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.resetLocked()
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Workflow) View() View {
	w.mu.Lock()
	defer w.mu.Unlock()
	errs := make(Errors, len(w.errs))
	for k, v := range w.errs {
		errs[k] = v
	}
	return View{
		State:       w.state,
		Title:       w.cfg.Title,
		Description: w.cfg.Description,
		Fields:      append([]Field(nil), w.cfg.Fields...),
		Values:      w.values.Clone(),
		Errors:      errs,
		General:     w.general,
	}
}

// IsValidation reports whether err came from field validation.
func IsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func (w *Workflow) closeAfterSuccess(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.gen == gen && w.state == StateSuccess {
		w.resetLocked()
	}
}

// resetLocked releases all form state and bumps the generation so late save
// results and success timers become no-ops.
func (w *Workflow) resetLocked() {
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.gen++
	w.state = StateClosed
	w.cfg = Config{}
	w.values = Values{}
	w.errs = Errors{}
	w.general = ""
}

func (w *Workflow) hasField(key string) bool {
	for _, f := range w.cfg.Fields {
		if f.Key == key {
			return true
		}
	}
	return false
}
