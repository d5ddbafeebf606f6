// =============================================================================
// Profit Calculator - Sheet
// =============================================================================
//
// A Sheet is the explicit state container for the row collection. The
// presentation layer holds one and calls into it for every user action:
//
//   Add     -> new row (inheriting terms from the first row), recomputed
//   Update  -> raw field edit by row identifier, recomputed
//   Delete  -> removal by row identifier
//   Replace -> wholesale replacement on import
//
// Insertion order is the storage order. Every path that changes a raw field
// runs the calculation engine on the affected row, so no row ever carries
// stale derived values.
//
// =============================================================================

package sheet

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ginjaninja78/profit-calculator/internal/calc"
	"github.com/ginjaninja78/profit-calculator/internal/row"
)

// ErrRowNotFound is returned when no row carries the requested identifier.
var ErrRowNotFound = errors.New("row not found")

// Sheet owns an ordered collection of rows.
type Sheet struct {
	rows     []row.Row
	defaults row.Defaults
	logger   *zap.Logger
}

// Option configures a Sheet.
type Option func(*Sheet)

// WithDefaults sets the raw values given to rows added to an empty sheet.
func WithDefaults(d row.Defaults) Option {
	return func(s *Sheet) { s.defaults = d }
}

// WithLogger sets the logger used for edit tracing.
func WithLogger(l *zap.Logger) Option {
	return func(s *Sheet) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty sheet.
func New(opts ...Option) *Sheet {
	s := &Sheet{
		defaults: row.BuiltinDefaults(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of rows.
func (s *Sheet) Len() int { return len(s.rows) }

// Rows returns a copy of the rows in storage order.
func (s *Sheet) Rows() []row.Row {
	out := make([]row.Row, len(s.rows))
	copy(out, s.rows)
	return out
}

// Get returns the row with the given identifier.
func (s *Sheet) Get(id string) (row.Row, error) {
	i, err := s.index(id)
	if err != nil {
		return row.Row{}, err
	}
	return s.rows[i], nil
}

// Add appends a new, recomputed row. When the sheet already holds rows the
// new one inherits discount, GST and expense from the first row; o is
// applied on top of that.
func (s *Sheet) Add(o row.Overrides) row.Row {
	base := row.Overrides{}
	if len(s.rows) > 0 {
		base = row.InheritFrom(s.rows[0])
	}

	r := calc.Recompute(row.NewWithDefaults(s.defaults, base.Merge(o)))
	s.rows = append(s.rows, r)

	s.logger.Debug("row added", zap.String("id", r.ID), zap.Int("rows", len(s.rows)))
	return r
}

// Update sets a raw field of the row identified by id and recomputes it.
func (s *Sheet) Update(id string, f row.Field, value string) (row.Row, error) {
	i, err := s.index(id)
	if err != nil {
		return row.Row{}, err
	}

	r := s.rows[i]
	if err := r.Set(f, value); err != nil {
		return row.Row{}, err
	}
	r = calc.Recompute(r)
	s.rows[i] = r

	s.logger.Debug("row updated",
		zap.String("id", id),
		zap.String("field", string(f)),
		zap.String("value", value),
		zap.String("profit", r.Profit),
	)
	return r, nil
}

// Delete removes the row identified by id.
func (s *Sheet) Delete(id string) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}

	s.rows = append(s.rows[:i:i], s.rows[i+1:]...)

	s.logger.Debug("row deleted", zap.String("id", id), zap.Int("rows", len(s.rows)))
	return nil
}

// Replace swaps the whole collection for rows. When recompute is true every
// row is passed through the calculation engine first, repairing stale or
// hand-edited derived fields.
func (s *Sheet) Replace(rows []row.Row, recompute bool) {
	if recompute {
		rows = calc.RecomputeAll(rows)
	} else {
		rows = append([]row.Row(nil), rows...)
	}
	s.rows = rows

	s.logger.Debug("rows replaced", zap.Int("rows", len(rows)), zap.Bool("recomputed", recompute))
}

// index locates the row with the given identifier.
func (s *Sheet) index(id string) (int, error) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrRowNotFound, id)
}
