package domain

import (
	"strconv"
	"strings"
)

// ResourceRef is a lightweight pointer into the remote catalog.
// The trailing numeric path segment of URL is the referenced entity's
// primary key.
type ResourceRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID extracts the numeric primary key from the trailing path segment
// of the reference URL. Returns 0 and false if the URL carries no ID.
func (r ResourceRef) ID() (int, bool) {
	return IDFromURL(r.URL)
}

// IDFromURL extracts the numeric primary key encoded as the trailing
// path segment of a catalog URL ("…/pokemon-species/25/" → 25).
func IDFromURL(rawURL string) (int, bool) {
	trimmed := strings.TrimRight(rawURL, "/")
	idx := strings.LastIndexByte(trimmed, '/')
	if idx < 0 {
		return 0, false
	}
	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
