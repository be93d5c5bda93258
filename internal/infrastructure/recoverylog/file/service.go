// Package filelog implements the wallet recovery log: an append-only,
// human-readable file recording every secret before it is trusted to the
// database. If the database write fails or the process crashes, the
// secret can still be recovered by reading this file.
package filelog

import (
	"fmt"
	"os"

	"github.com/webcash/walletd/internal/core/ports"
)

type service struct {
	path string
}

// NewService ensures the recovery log file exists and returns an
// appender for it.
func NewService(path string) (ports.RecoveryLog, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open/create wallet recovery file: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, err
	}
	return &service{path: path}, nil
}

// Append writes one "<unix_ts> <category> <value>[ <extra>]" line and
// flushes it to storage before returning.
func (s *service) Append(timestamp int64, category, value, extra string) error {
	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open wallet recovery file: %w", err)
	}
	defer file.Close()

	line := fmt.Sprintf("%d %s %s", timestamp, category, value)
	if extra != "" {
		line += " " + extra
	}
	if _, err := file.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write wallet recovery file: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to flush wallet recovery file: %w", err)
	}
	return nil
}

func (s *service) Path() string {
	return s.path
}
