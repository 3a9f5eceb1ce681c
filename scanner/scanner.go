// Package scanner discovers the JavaScript files of a project.
package scanner

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Extensions are the JavaScript file extensions scanned by default.
var Extensions = []string{".js", ".mjs", ".cjs"}

// skippedDirs are never descended into.
var skippedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
}

type FileInfo struct {
	Path string
	Size int64
}

type Scanner struct {
	rootDir    string
	extensions []string
}

// New returns a scanner of rootDir. Without extensions, Extensions is used.
func New(rootDir string, extensions ...string) *Scanner {
	if len(extensions) == 0 {
		extensions = Extensions
	}
	return &Scanner{
		rootDir:    rootDir,
		extensions: extensions,
	}
}

// Scan returns the target files below the root directory, sorted by path.
// Dependency directories and hidden directories are skipped.
func (s *Scanner) Scan() ([]FileInfo, error) {
	var files []FileInfo

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.rootDir && isSkippedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.IsTarget(path) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		files = append(files, FileInfo{Path: path, Size: info.Size()})
		return nil
	})

	slices.SortFunc(files, func(a, b FileInfo) int { return strings.Compare(a.Path, b.Path) })
	return files, err
}

// Dirs returns the root directory and every directory below it that Scan
// descends into.
func (s *Scanner) Dirs() ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != s.rootDir && isSkippedDir(d.Name()) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

// IsSkippedDir reports whether a directory named name is never scanned.
func IsSkippedDir(name string) bool {
	return isSkippedDir(name)
}

// IsTarget reports whether path has one of the scanned extensions.
func (s *Scanner) IsTarget(path string) bool {
	return slices.Contains(s.extensions, filepath.Ext(path))
}

func isSkippedDir(name string) bool {
	return skippedDirs[name] || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}
