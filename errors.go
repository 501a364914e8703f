package smartbiz

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when an id does not match any record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an id or SKU is already taken.
	ErrDuplicate = errors.New("already exists")
	// ErrInvalid is wrapped by every validation error.
	ErrInvalid = errors.New("invalid")
)

// newID returns a fresh identifier starting with prefix.
var newID = func(prefix string) string {
	u := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + strings.ToUpper(u[:8])
}
