package model

import "regexp"

// FilterState is the committed filter: raw text plus its compiled pattern.
// A nil Pattern matches everything; when compilation failed Err carries the
// recoverable error and Pattern stays nil so refresh keeps working.
type FilterState struct {
	Text    string
	Pattern *regexp.Regexp
	Err     error
}

// Active reports whether a usable pattern is in effect.
func (f FilterState) Active() bool {
	return f.Pattern != nil
}

// Match tests the record's process name, display name, addresses and
// status against the pattern.
func (f FilterState) Match(r ConnectionRecord) bool {
	if f.Pattern == nil {
		return true
	}
	hay := r.ProcessName + " " + r.DisplayName() + " " + r.LocalAddr + " " + r.RemoteAddr + " " + string(r.Status)
	return f.Pattern.MatchString(hay)
}
