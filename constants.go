package green

import "github.com/ehrlich-b/go-green/internal/constants"

// Re-export sizing constants for the public API.
const (
	PageSize         = constants.PageSize
	MinStackSize     = constants.MinStackSize
	DefaultStackSize = constants.DefaultStackSize
)
