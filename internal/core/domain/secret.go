package domain

// Secret is a stored 256-bit wallet secret, either derived from the
// master secret or learned externally.
type Secret struct {
	ID        int64
	Timestamp int64
	Value     string
	Mine      bool
	Sweep     bool
}

// MergeFlags combines the stored flags of a secret with the flags of a
// duplicate insertion. The flags record the union of everything ever
// learned about a secret: once it is known to not be self-derived, mine
// stays false (AND); once it is known to have been exposed, sweep stays
// true (OR).
func MergeFlags(oldMine, oldSweep, newMine, newSweep bool) (mine, sweep bool) {
	return oldMine && newMine, oldSweep || newSweep
}
