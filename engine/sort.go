package engine

import (
	"sort"
	"strings"

	"netshow/model"
)

// statusRank orders socket states for the status sort: live traffic first,
// then listeners, then the teardown states, unknown last.
var statusRank = map[model.SocketStatus]int{
	model.StatusEstablished: 0,
	model.StatusListen:      1,
	model.StatusSynSent:     2,
	model.StatusSynRecv:     3,
	model.StatusFinWait1:    4,
	model.StatusFinWait2:    5,
	model.StatusTimeWait:    6,
	model.StatusCloseWait:   7,
	model.StatusLastAck:     8,
	model.StatusClosing:     9,
	model.StatusClose:       10,
	model.StatusUnknown:     11,
}

// sortRows sorts in place by the active sort key. Ties always break by
// record key, so equal-comparing rows never swap positions between
// adjacent refreshes.
func sortRows(rows []model.ViewRow, key model.SortKey) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch key {
		case model.SortByStatus:
			if ra, rb := statusRank[a.Record.Status], statusRank[b.Record.Status]; ra != rb {
				return ra < rb
			}
			if na, nb := foldName(a), foldName(b); na != nb {
				return na < nb
			}
		case model.SortByProcess:
			if na, nb := foldName(a), foldName(b); na != nb {
				return na < nb
			}
		}
		return a.Record.Key < b.Record.Key
	})
}

func foldName(r model.ViewRow) string {
	return strings.ToLower(r.Record.ProcessName)
}
