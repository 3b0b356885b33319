// Package scanner finds event files below a directory.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/penwyp/go-consensus-timeline/internal/data/parser"
	"github.com/penwyp/go-consensus-timeline/internal/util"
)

// FileScanner walks a directory for files with a known event encoding
type FileScanner struct {
	baseDir string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{baseDir: baseDir}
}

// Scan returns the event files below the base directory in lexical order.
// Unreadable entries are skipped.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount, totalCount := 0, 0

	util.LogDebugf("Start scanning directory: %s", s.baseDir)

	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == s.baseDir {
				return err
			}
			util.LogDebugf("Skip file (error): %s - %v", path, err)
			return nil
		}
		if d.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if _, err := parser.DetectFormat(path); err == nil {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)

	util.LogDebugf("File scan completed: duration %v, scanned %d directories, %d files, found %d event files",
		time.Since(start), dirCount, totalCount, len(files))
	return files, err
}

// ExpandPaths replaces every directory in paths by the event files it
// contains. Plain files are kept as given, in order.
func ExpandPaths(paths []string) ([]string, error) {
	expanded := make([]string, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			// missing files surface when they are parsed
			expanded = append(expanded, p)
			continue
		}

		files, err := NewFileScanner(p).Scan()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", p, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("no event files (.json, .jsonl, .msgpack) in %s", p)
		}
		expanded = append(expanded, files...)
	}
	return expanded, nil
}
