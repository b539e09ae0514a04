package domain

import "strconv"

// Issue represents an issue assigned to the authenticated identity.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Repository string   // Name of the repository the issue belongs to
	Title      string   // Issue title
	Labels     []string // Label names
	Number     int      // Issue number within the repository
}

// HasAnyLabel reports whether at least one of the issue's labels is in names.
// Matching is exact and case-sensitive.
func (i Issue) HasAnyLabel(names []string) bool {
	for _, label := range i.Labels {
		for _, name := range names {
			if label == name {
				return true
			}
		}
	}
	return false
}

// Message returns the display line for the issue.
// Format: [<repo> #<number>] <title>
func (i Issue) Message() string {
	return "[" + i.Repository + " #" + strconv.Itoa(i.Number) + "] " + i.Title
}
