package ui

import "netshow/model"

// statusIcons maps each socket state to its table icon.
var statusIcons = map[model.SocketStatus]string{
	model.StatusEstablished: "✅",
	model.StatusListen:      "👂",
	model.StatusTimeWait:    "⏳",
	model.StatusCloseWait:   "⏸️",
	model.StatusSynSent:     "📤",
	model.StatusSynRecv:     "📥",
	model.StatusFinWait1:    "🔄",
	model.StatusFinWait2:    "🔁",
	model.StatusClosing:     "🔚",
	model.StatusLastAck:     "🏁",
}

func statusIcon(status model.SocketStatus) string {
	if icon, ok := statusIcons[status]; ok {
		return icon
	}
	return "❓"
}

func cpuIcon(pct float64) string {
	switch {
	case pct > 50:
		return "🔥"
	case pct > 10:
		return "⚡"
	default:
		return "💤"
	}
}

func memIcon(pct float32) string {
	switch {
	case pct > 80:
		return "🚨"
	case pct > 50:
		return "⚠️"
	default:
		return "💾"
	}
}
