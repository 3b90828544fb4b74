package cli

import (
	"fmt"
	"strconv"
	"strings"

	"slate-cli/internal/model"
)

type badEntityRefError struct {
	ref string
}

func (e badEntityRefError) Error() string {
	return fmt.Sprintf("invalid entity reference %q (expected kind:id, e.g. shot:101)", e.ref)
}

// parseEntityRef parses "shot:101" / "asset:7" references used by task and
// note commands.
func parseEntityRef(ref string) (model.Kind, int64, error) {
	parts := strings.SplitN(strings.TrimSpace(ref), ":", 2)
	if len(parts) != 2 {
		return "", 0, badEntityRefError{ref: ref}
	}
	kind, ok := model.ParseKind(parts[0])
	if !ok {
		return "", 0, badEntityRefError{ref: ref}
	}
	id, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil || id <= 0 {
		return "", 0, badEntityRefError{ref: ref}
	}
	return kind, id, nil
}
