// Package reader is the input collaborator: it turns file paths into
// ordered line slices and expands glob patterns into concrete paths.
// I/O errors propagate to the caller; the pipeline itself never touches
// the filesystem.
package reader

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ReadLines reads a log file into an ordered slice of lines. Trailing
// newlines are stripped here so downstream stages see bare content; the
// lines themselves are otherwise untouched (no trimming).
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	// Log lines can be long (stack traces, JSON payloads); lift the
	// default 64KiB scan limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log %s: %w", path, err)
	}

	return lines, nil
}

// Resolve expands each argument into concrete file paths. Arguments
// containing glob metacharacters are matched with doublestar (so
// "logs/**/*.log" works); anything else passes through verbatim, letting
// a missing literal path fail later with a proper open error. The result
// is deduplicated and sorted per pattern, preserving argument order
// between patterns.
func Resolve(patterns []string) ([]string, error) {
	var paths []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		paths = append(paths, p)
	}

	for _, pattern := range patterns {
		if !hasGlobMeta(pattern) {
			add(pattern)
			continue
		}

		base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
		matches, err := doublestar.Glob(os.DirFS(base), rest)
		if err != nil {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}

		sort.Strings(matches)
		for _, m := range matches {
			add(filepath.Join(base, filepath.FromSlash(m)))
		}
	}

	return paths, nil
}

func hasGlobMeta(s string) bool {
	for _, r := range s {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
