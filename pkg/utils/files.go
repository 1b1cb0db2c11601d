package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IsPHPFile checks if a file is a PHP source file
func IsPHPFile(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".php")
}

// FindPHPFiles recursively finds all PHP source files in a directory.
// Hidden directories are always skipped; exclude holds directory names or
// root-relative slash paths to skip as well.
func FindPHPFiles(root string, exclude []string) ([]string, error) {
	var phpFiles []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden and excluded directories (but not the root directory)
		if d.IsDir() {
			if path != root && isExcluded(root, path, exclude) {
				return filepath.SkipDir
			}
			return nil
		}

		if IsPHPFile(d.Name()) {
			phpFiles = append(phpFiles, path)
		}

		return nil
	})

	return phpFiles, err
}

func isExcluded(root, path string, exclude []string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, ex := range exclude {
		ex = strings.Trim(filepath.ToSlash(ex), "/")
		if ex == name || ex == rel {
			return true
		}
	}
	return false
}

// IsDirectory checks if the given path is a directory
func IsDirectory(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}
