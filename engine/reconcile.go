package engine

import (
	"netshow/identity"
	"netshow/model"
)

// Reconciler diffs successive snapshots against a stable keyed view,
// applies the active filter and sort, and emits a minimal set of row
// mutations. It owns the friendly-name resolution cache and the previous
// record set; everything it returns is freshly built and safe to hold
// across cycles.
type Reconciler struct {
	names *identity.Resolver
	last  map[string]model.ConnectionRecord
}

// New returns a reconciler with an empty view.
func New() *Reconciler {
	return &Reconciler{
		names: identity.NewResolver(),
		last:  make(map[string]model.ConnectionRecord),
	}
}

// Reconcile turns a raw snapshot into the next ordered, filtered row set
// plus the diff against the previous cycle. prev is the previously
// rendered sequence (post filter and sort); the record-level add/remove/
// update sets are computed against the full previous snapshot regardless
// of filtering.
func (e *Reconciler) Reconcile(prev []model.ViewRow, records []model.ConnectionRecord, filter model.FilterState, key model.SortKey) ([]model.ViewRow, model.RowDiff) {
	var diff model.RowDiff

	// Resolve friendly names. The resolver caches by pid+name so only
	// records whose process identity changed do real work.
	next := make(map[string]model.ConnectionRecord, len(records))
	ordered := make([]model.ConnectionRecord, 0, len(records))
	for _, rec := range records {
		if _, dup := next[rec.Key]; dup {
			continue
		}
		rec.FriendlyName = e.names.Resolve(rec.ProcessName, rec.PID, rec.Cmdline)
		next[rec.Key] = rec
		ordered = append(ordered, rec)
	}

	// Snapshot set difference.
	for key, rec := range next {
		old, ok := e.last[key]
		switch {
		case !ok:
			diff.Added = append(diff.Added, key)
		case displayedFieldsChanged(old, rec):
			diff.Updated = append(diff.Updated, key)
		}
	}
	for key, rec := range e.last {
		if _, ok := next[key]; !ok {
			diff.Removed = append(diff.Removed, key)
			e.names.Forget(rec.PID, rec.ProcessName)
		}
	}
	e.last = next

	// Filter the full new set, then sort. Filter changes need full
	// re-evaluation anyway, so this is never incremental.
	rows := make([]model.ViewRow, 0, len(ordered))
	for _, rec := range ordered {
		if !filter.Match(rec) {
			continue
		}
		rows = append(rows, model.ViewRow{Record: rec, Name: rec.DisplayName()})
	}
	sortRows(rows, key)

	diff.Ops = positionalDiff(prev, rows)
	return rows, diff
}

// displayedFieldsChanged reports whether any field the table renders
// differs between two records with the same key.
func displayedFieldsChanged(a, b model.ConnectionRecord) bool {
	return a.Status != b.Status ||
		a.ProcessName != b.ProcessName ||
		a.FriendlyName != b.FriendlyName ||
		a.LocalAddr != b.LocalAddr ||
		a.RemoteAddr != b.RemoteAddr
}

func rowEqual(a, b model.ViewRow) bool {
	return a.Record.Key == b.Record.Key &&
		a.Name == b.Name &&
		!displayedFieldsChanged(a.Record, b.Record)
}

// positionalDiff compares the new rendered sequence position-by-position
// against the previous one and emits the minimal insert/delete/update ops
// that transform prev into next. Indexes refer to the sequence state as
// ops are applied in order.
func positionalDiff(prev, next []model.ViewRow) []model.RowOp {
	prevKeys := make(map[string]bool, len(prev))
	for _, r := range prev {
		prevKeys[r.Record.Key] = true
	}
	nextKeys := make(map[string]bool, len(next))
	for _, r := range next {
		nextKeys[r.Record.Key] = true
	}

	var ops []model.RowOp
	i, j := 0, 0
	for i < len(prev) || j < len(next) {
		switch {
		case i >= len(prev):
			ops = append(ops, model.RowOp{Kind: model.RowInsert, Index: j, Key: next[j].Record.Key})
			j++
		case j >= len(next):
			ops = append(ops, model.RowOp{Kind: model.RowDelete, Index: j, Key: prev[i].Record.Key})
			i++
		case prev[i].Record.Key == next[j].Record.Key:
			if !rowEqual(prev[i], next[j]) {
				ops = append(ops, model.RowOp{Kind: model.RowUpdate, Index: j, Key: next[j].Record.Key})
			}
			i++
			j++
		case !nextKeys[prev[i].Record.Key]:
			ops = append(ops, model.RowOp{Kind: model.RowDelete, Index: j, Key: prev[i].Record.Key})
			i++
		case !prevKeys[next[j].Record.Key]:
			ops = append(ops, model.RowOp{Kind: model.RowInsert, Index: j, Key: next[j].Record.Key})
			j++
		default:
			// Both rows exist elsewhere in the other sequence: the row
			// moved. Rewrite in place rather than churning the list.
			ops = append(ops, model.RowOp{Kind: model.RowUpdate, Index: j, Key: next[j].Record.Key})
			i++
			j++
		}
	}
	return ops
}
