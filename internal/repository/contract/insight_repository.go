package contract

import (
	"context"
)

// InsightRepository executes a single generated read-only statement against
// the structured store. The error message on failure is returned verbatim so
// the query engine can feed it back into the next generation attempt.
type InsightRepository interface {
	ExecuteReadOnly(ctx context.Context, query string) ([]map[string]interface{}, error)
}
