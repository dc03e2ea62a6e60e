package model

// SortKey selects the comparator for the rendered table.
type SortKey int

const (
	// SortByKey orders rows by record key (pid, then addresses). The
	// default until the user picks a column.
	SortByKey SortKey = iota
	// SortByStatus orders rows by socket status, then process name.
	SortByStatus
	// SortByProcess orders rows case-insensitively by process name.
	SortByProcess
)

func (k SortKey) String() string {
	switch k {
	case SortByStatus:
		return "status"
	case SortByProcess:
		return "process"
	default:
		return "key"
	}
}

// ViewRow is one rendered table row: a connection record plus its resolved
// display name. Emoji prefixes are a presentation concern and are applied
// by the UI at render time.
type ViewRow struct {
	Record ConnectionRecord
	Name   string
}

// RowOpKind is the kind of a positional row mutation.
type RowOpKind int

const (
	RowInsert RowOpKind = iota
	RowDelete
	RowUpdate
)

func (k RowOpKind) String() string {
	switch k {
	case RowInsert:
		return "insert"
	case RowDelete:
		return "delete"
	default:
		return "update"
	}
}

// RowOp is one mutation of the rendered sequence. Index refers to the
// position in the sequence as ops are applied in order.
type RowOp struct {
	Kind  RowOpKind
	Index int
	Key   string
}

// RowDiff describes how one reconciliation changed the view. Added,
// Removed and Updated are record-level key sets from the snapshot
// comparison; Ops is the minimal positional mutation list for the
// rendered (filtered and sorted) sequence.
type RowDiff struct {
	Added   []string
	Removed []string
	Updated []string
	Ops     []RowOp
}

// Empty reports whether the reconciliation changed nothing.
func (d RowDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Updated) == 0 && len(d.Ops) == 0
}
