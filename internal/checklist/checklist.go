// Package checklist owns the live working list for one page session.
//
// A Model is created once per session, mutated only through its methods and
// persisted after every mutation that changes it. Views are pure projections
// over the item order, with exclusion taking precedence over status.
package checklist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/sandeepkv93/prchecklist/internal/catalog"
	"github.com/sandeepkv93/prchecklist/internal/model"
	"github.com/sandeepkv93/prchecklist/internal/reconcile"
	"github.com/sandeepkv93/prchecklist/internal/storage"
)

// StateSaver persists a page's state. *storage.StateStore implements it.
type StateSaver interface {
	Save(ctx context.Context, pageURL string, state model.ChecklistState) error
}

// StateLoader reads a page's saved state.
type StateLoader interface {
	Load(ctx context.Context, pageURL string) (model.ChecklistState, bool, error)
}

// StateRepository is the persistence surface Open needs.
type StateRepository interface {
	StateLoader
	StateSaver
}

// ErrReadOnly is returned by mutations on a model whose load failed.
var ErrReadOnly = errors.New("checklist: read-only after failed load")

type Model struct {
	page     string
	readOnly bool
	state    model.ChecklistState
	saver  StateSaver
	logger *zap.Logger
}

// New wraps state for page. A nil saver disables persistence; a nil logger
// is replaced with a no-op logger.
func New(page string, state model.ChecklistState, saver StateSaver, logger *zap.Logger) *Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Model{
		page:   page,
		state:  state.Clone(),
		saver:  saver,
		logger: logger.With(zap.String("page", page)),
	}
}

// Open loads the catalog and the saved state for page and reconciles them.
// A catalog failure is logged and returned alongside an empty read-only
// model so the caller can still render. A failure reading saved state is
// returned the same way, with a read-only model built from the catalog
// alone. Read-only models never write, so saved progress survives.
func Open(ctx context.Context, loader catalog.Loader, states StateRepository, page string, logger *zap.Logger) (*Model, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := loader.Load(ctx)
	if err != nil {
		logger.Error("catalog fetch failed", zap.String("page", page), zap.Error(err))
		return readOnly(page, model.ChecklistState{}, logger), err
	}

	saved, ok, err := states.Load(ctx, page)
	if err != nil {
		logger.Error("load saved state failed", zap.String("page", page), zap.Error(err))
		return readOnly(page, reconcile.Reconcile(entries, nil), logger), err
	}
	var prev *model.ChecklistState
	if ok {
		prev = &saved
	}
	state := reconcile.Reconcile(entries, prev)
	logger.Debug("checklist opened",
		zap.String("page", page),
		zap.Int("catalog", len(entries)),
		zap.Bool("restored", ok),
		zap.Int("items", len(state.Items)),
		zap.Int("excluded", len(state.Excluded)),
	)
	return New(page, state, states, logger), nil
}

func readOnly(page string, state model.ChecklistState, logger *zap.Logger) *Model {
	m := New(page, state, nil, logger)
	m.readOnly = true
	return m
}

func (m *Model) Page() string { return m.page }

// ReadOnly reports whether mutations are refused.
func (m *Model) ReadOnly() bool { return m.readOnly }

// Items returns a copy of the items in display order.
func (m *Model) Items() []model.ChoreItem {
	return append([]model.ChoreItem(nil), m.state.Items...)
}

// Excluded returns the excluded indices, ascending.
func (m *Model) Excluded() []int {
	return m.state.ExcludedIndices()
}

// State returns a deep copy of the current state.
func (m *Model) State() model.ChecklistState {
	return m.state.Clone()
}

func (m *Model) IsExcluded(index int) bool {
	return m.state.Excluded[index]
}

// Item looks up an item by index.
func (m *Model) Item(index int) (model.ChoreItem, bool) {
	pos := m.position(index)
	if pos < 0 {
		return model.ChoreItem{}, false
	}
	return m.state.Items[pos], true
}

// View projects the items belonging to partition, in item order.
func (m *Model) View(partition model.Status) []model.ChoreItem {
	out := make([]model.ChoreItem, 0)
	for _, item := range m.state.Items {
		if m.state.Partition(item) == partition {
			out = append(out, item)
		}
	}
	return out
}

// NotApplicableVisible reports whether the not-applicable view has content.
func (m *Model) NotApplicableVisible() bool {
	return len(m.state.ExcludedIndices()) > 0
}

// CanSelectAll reports whether the bulk action is currently permitted.
// Callers must refuse SelectAll while this is false.
func (m *Model) CanSelectAll() bool {
	return !m.NotApplicableVisible()
}

// AddItem appends a custom pending item. Empty or whitespace-only titles
// fail with model.ErrValidation and leave the model untouched.
func (m *Model) AddItem(ctx context.Context, title string) (model.ChoreItem, error) {
	if m.readOnly {
		return model.ChoreItem{}, ErrReadOnly
	}
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return model.ChoreItem{}, fmt.Errorf("%w: chore title is required", model.ErrValidation)
	}
	item := model.ChoreItem{
		Index:  m.state.NextIndex(),
		Title:  trimmed,
		Status: model.StatusPending,
		Custom: true,
	}
	m.state.Items = append(m.state.Items, item)
	m.logger.Debug("chore added", zap.Int("index", item.Index), zap.String("title", item.Title))
	return item, m.persist(ctx, "add")
}

// SetStatus marks the item done or pending. Unknown indices are ignored.
func (m *Model) SetStatus(ctx context.Context, index int, done bool) error {
	if m.readOnly {
		return ErrReadOnly
	}
	pos := m.position(index)
	if pos < 0 {
		return nil
	}
	m.state.Items[pos].Status = model.StatusFromDone(done)
	m.logger.Debug("chore status set", zap.Int("index", index), zap.Bool("done", done))
	return m.persist(ctx, "set_status")
}

// ToggleExclusion flips the not-applicable flag. Unknown indices are ignored.
func (m *Model) ToggleExclusion(ctx context.Context, index int) error {
	if m.readOnly {
		return ErrReadOnly
	}
	if m.position(index) < 0 {
		return nil
	}
	if m.state.Excluded == nil {
		m.state.Excluded = make(map[int]bool)
	}
	if m.state.Excluded[index] {
		delete(m.state.Excluded, index)
	} else {
		m.state.Excluded[index] = true
	}
	m.logger.Debug("chore exclusion toggled", zap.Int("index", index), zap.Bool("excluded", m.state.Excluded[index]))
	return m.persist(ctx, "toggle_exclusion")
}

// SelectAll sets the status of every non-excluded item.
func (m *Model) SelectAll(ctx context.Context, done bool) error {
	if m.readOnly {
		return ErrReadOnly
	}
	status := model.StatusFromDone(done)
	for i, item := range m.state.Items {
		if m.state.Excluded[item.Index] {
			continue
		}
		m.state.Items[i].Status = status
	}
	m.logger.Debug("chores bulk set", zap.Bool("done", done), zap.Int("items", len(m.state.Items)))
	return m.persist(ctx, "select_all")
}

func (m *Model) position(index int) int {
	for i, item := range m.state.Items {
		if item.Index == index {
			return i
		}
	}
	return -1
}

func (m *Model) persist(ctx context.Context, op string) error {
	if m.saver == nil {
		return nil
	}
	if err := m.saver.Save(ctx, m.page, m.state.Clone()); err != nil {
		var pe *storage.PersistenceError
		if !errors.As(err, &pe) {
			err = &storage.PersistenceError{Op: op, Key: storage.StateKey(m.page), Err: err}
		}
		m.logger.Warn("persist checklist state failed", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}
