package ports

import "context"

// SnapshotCache holds short-lived per-table snapshots so repeated dashboard
// reads within the TTL window do not hit the remote store. Staleness is
// bounded by the TTL; every mutation invalidates the affected table.
type SnapshotCache interface {
	// Get unmarshals the cached snapshot for table into dest and reports
	// whether a live entry was found.
	Get(ctx context.Context, table string, dest any) (bool, error)
	Set(ctx context.Context, table string, v any) error
	Invalidate(ctx context.Context, table string) error
}
