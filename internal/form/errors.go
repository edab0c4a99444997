package form

import (
	"sort"
	"strconv"
	"strings"
)

// Errors maps a field path to a human-readable message.
//
// Nested and indexed fields use dotted paths such as "segments.2.carrier".
// Build them with Path and take them apart with ParsePath rather than
// formatting strings by hand.
type Errors map[string]string

// Has reports whether path has an error.
func (e Errors) Has(path string) bool {
	_, ok := e[path]
	return ok
}

// Get returns the message for path, or "" if the field is valid.
func (e Errors) Get(path string) string {
	return e[path]
}

// Fields returns the failing paths in sorted order.
func (e Errors) Fields() []string {
	out := make([]string, 0, len(e))
	for k := range e {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Path builds the dotted path of a field inside an indexed collection,
// e.g. Path("segments", 0, "from") == "segments.0.from".
func Path(field string, index int, sub string) string {
	return field + "." + strconv.Itoa(index) + "." + sub
}

// ParsePath splits a path produced by Path. ok is false for plain field
// names and any other shape.
func ParsePath(path string) (field string, index int, sub string, ok bool) {
	parts := strings.SplitN(path, ".", 3)
	if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
		return "", 0, "", false
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 {
		return "", 0, "", false
	}
	return parts[0], i, parts[2], true
}
