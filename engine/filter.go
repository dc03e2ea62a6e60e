package engine

import (
	"fmt"
	"regexp"

	"netshow/model"
)

// CompileFilter builds the committed FilterState for the given raw text.
// Empty text means no filtering. A pattern that fails to compile yields a
// state that matches everything and carries the recoverable error for the
// UI to surface next to the input; the refresh cycle is never interrupted.
func CompileFilter(text string) model.FilterState {
	f := model.FilterState{Text: text}
	if text == "" {
		return f
	}
	re, err := regexp.Compile("(?i)" + text)
	if err != nil {
		f.Err = fmt.Errorf("invalid filter: %w", err)
		return f
	}
	f.Pattern = re
	return f
}
