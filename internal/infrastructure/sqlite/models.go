package sqlite

// RecentModel represents a database row for the recents table.
// Timestamps are Unix seconds.
type RecentModel struct {
	ID        int64
	Path      string
	Kind      string  // "csv" or "sqlite"
	TableName *string // nullable, set for sqlite datasets
	OpenedAt  int64
}
