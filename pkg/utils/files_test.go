package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPHPFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected bool
	}{
		{
			name:     "regular php file",
			filename: "index.php",
			expected: true,
		},
		{
			name:     "php file with path",
			filename: "src/Controller/HomeController.php",
			expected: true,
		},
		{
			name:     "upper case extension",
			filename: "LEGACY.PHP",
			expected: true,
		},
		{
			name:     "non-php file",
			filename: "README.md",
			expected: false,
		},
		{
			name:     "file with .php in middle",
			filename: "file.php.bak",
			expected: false,
		},
		{
			name:     "empty string",
			filename: "",
			expected: false,
		},
		{
			name:     "template file",
			filename: "view.phtml",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result := IsPHPFile(tt.filename)
			req.Equal(tt.expected, result, "IsPHPFile(%q) = %v, want %v", tt.filename, result, tt.expected)
		})
	}
}

func TestIsDirectory(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	tempFile := filepath.Join(tempDir, "test.txt")
	err := os.WriteFile(tempFile, []byte("test"), 0644)
	req.NoError(err, "Failed to create temp file: %v", err)

	tests := []struct {
		name      string
		path      string
		expected  bool
		expectErr bool
	}{
		{
			name:     "existing directory",
			path:     tempDir,
			expected: true,
		},
		{
			name:     "existing file",
			path:     tempFile,
			expected: false,
		},
		{
			name:      "non-existent path",
			path:      "/non/existent/path",
			expectErr: true,
		},
		{
			name:     "current directory",
			path:     ".",
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := IsDirectory(tt.path)

			if tt.expectErr {
				req.Error(err, "IsDirectory(%q) expected error, got nil", tt.path)
				return
			}
			req.NoError(err, "IsDirectory(%q) unexpected error: %v", tt.path, err)
			req.Equal(tt.expected, result, "IsDirectory(%q) = %v, want %v", tt.path, result, tt.expected)
		})
	}
}

func TestFindPHPFiles(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	dirs := []string{
		"src/Controller",
		"src/Entity",
		"tests",
		"vendor/acme/lib",
		"var/cache",
		".git",
		".idea",
	}
	for _, dir := range dirs {
		err := os.MkdirAll(filepath.Join(tempDir, dir), 0755)
		req.NoError(err, "Failed to create directory %s: %v", dir, err)
	}

	files := map[string]string{
		"index.php":                    "<?php",
		"src/Controller/Home.php":      "<?php",
		"src/Entity/User.php":          "<?php",
		"tests/UserTest.php":           "<?php",
		"vendor/acme/lib/Lib.php":      "<?php", // excluded by name
		"var/cache/Compiled.php":       "<?php", // excluded by relative path
		".git/hooks.php":               "<?php", // hidden dir
		".idea/workspace.php":          "<?php", // hidden dir
		"README.md":                    "# README",
		"src/Controller/template.twig": "{{ x }}",
	}
	for filePath, content := range files {
		err := os.WriteFile(filepath.Join(tempDir, filePath), []byte(content), 0644)
		req.NoError(err, "Failed to create file %s: %v", filePath, err)
	}
	req.NoError(os.Mkdir(filepath.Join(tempDir, "empty"), 0755))

	tests := []struct {
		name          string
		root          string
		exclude       []string
		expectedFiles []string
		expectErr     bool
	}{
		{
			name:    "excludes by name and path",
			root:    tempDir,
			exclude: []string{"vendor", "var/cache/"},
			expectedFiles: []string{
				filepath.Join(tempDir, "index.php"),
				filepath.Join(tempDir, "src/Controller/Home.php"),
				filepath.Join(tempDir, "src/Entity/User.php"),
				filepath.Join(tempDir, "tests/UserTest.php"),
			},
		},
		{
			name: "no excludes still skips hidden directories",
			root: tempDir,
			expectedFiles: []string{
				filepath.Join(tempDir, "index.php"),
				filepath.Join(tempDir, "src/Controller/Home.php"),
				filepath.Join(tempDir, "src/Entity/User.php"),
				filepath.Join(tempDir, "tests/UserTest.php"),
				filepath.Join(tempDir, "var/cache/Compiled.php"),
				filepath.Join(tempDir, "vendor/acme/lib/Lib.php"),
			},
		},
		{
			name:      "non-existent directory",
			root:      "/non/existent/path",
			expectErr: true,
		},
		{
			name: "empty directory",
			root: filepath.Join(tempDir, "empty"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			result, err := FindPHPFiles(tt.root, tt.exclude)

			if tt.expectErr {
				req.Error(err, "FindPHPFiles(%q) expected error, got nil", tt.root)
				return
			}
			req.NoError(err, "FindPHPFiles(%q) unexpected error: %v", tt.root, err)
			req.ElementsMatch(tt.expectedFiles, result)
		})
	}
}
