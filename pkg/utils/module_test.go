package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtils_FindUpward(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, ".usplit.toml")
	req.NoError(os.WriteFile(configPath, []byte("[rules]\n"), 0644))

	subDir := filepath.Join(tempDir, "src", "Controller")
	req.NoError(os.MkdirAll(subDir, 0755))

	testFile := filepath.Join(subDir, "Home.php")
	req.NoError(os.WriteFile(testFile, []byte("<?php"), 0644))

	// from a file
	req.Equal(configPath, FindUpward(testFile, ".usplit.toml"))
	// from a directory
	req.Equal(configPath, FindUpward(subDir, ".usplit.toml"))
	// from the directory holding it
	req.Equal(configPath, FindUpward(tempDir, ".usplit.toml"))
}

func TestUtils_FindUpward_notFound(t *testing.T) {
	req := require.New(t)
	tempDir := t.TempDir()

	req.Empty(FindUpward(tempDir, "no-such-file-anywhere.toml"))

	// a directory with the wanted name does not count
	req.NoError(os.Mkdir(filepath.Join(tempDir, "config.d"), 0755))
	req.Empty(FindUpward(tempDir, "config.d"))
}
