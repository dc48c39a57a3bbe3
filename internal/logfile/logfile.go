package logfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	prefix = "weread2notion_"
	ext    = ".log"
)

// Name is the log file name for a run started at t.
func Name(t time.Time) string {
	return prefix + t.Format("20060102_150405") + ext
}

// Open creates the run's log file in dir.
func Open(dir string, now time.Time) (*os.File, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, Name(now)), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// Clean deletes every *.log entry directly in dir that is not a directory,
// symlinks included, and returns the removed paths. Subdirectories are not
// entered and a symlink is removed without touching its target.
func Clean(dir string) ([]string, error) {
	if dir == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var removed []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		if err := os.Remove(p); err != nil {
			return removed, fmt.Errorf("remove %s: %w", p, err)
		}
		removed = append(removed, p)
	}
	return removed, nil
}
