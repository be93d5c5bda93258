package ports

// RecoveryLog is the append-only durable record of every secret before it
// is trusted to the database. Append must not return until the line has
// been flushed to storage.
type RecoveryLog interface {
	Append(timestamp int64, category, value, extra string) error
	Path() string
}
