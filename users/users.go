// Package users resolves the set of system users known to the host.
package users

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Registry returns the user IDs profiles apply to when a profile does
// not name an explicit subset.
type Registry interface {
	UserIDs(ctx context.Context) ([]int, error)
}

// Static is a fixed set of user IDs.
type Static []int

// NewStatic creates a static registry. Without arguments it contains
// only the primary user (ID 0).
func NewStatic(ids ...int) Static {
	if len(ids) == 0 {
		ids = []int{0}
	}
	return Static(ids)
}

// UserIDs returns a copy of the static user set.
func (s Static) UserIDs(_ context.Context) ([]int, error) {
	ids := make([]int, len(s))
	copy(ids, s)
	return ids, nil
}

// ParseList parses a comma-separated user ID list (e.g. "0,10").
func ParseList(list string) ([]int, error) {
	var ids []int
	for _, f := range strings.Split(list, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		id, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("parsing user ID %q: %w", f, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
