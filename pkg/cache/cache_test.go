package cache

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestCache_MissingFile(t *testing.T) {
	req := require.New(t)
	c, err := Load(filepath.Join(t.TempDir(), DefaultFileName), "single_import_per_statement")
	req.NoError(err)
	req.Equal(0, c.Len())
	req.True(c.NeedsFixing("a.php", []byte("<?php")))
}

func TestCache_RoundTrip(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", DefaultFileName)
	sig := "single_import_per_statement"

	c, err := Load(path, sig)
	req.NoError(err)
	c.Set("src/./A.php", []byte("<?php\nuse A;\n"))
	c.Set("src/B.php", []byte("<?php\n"))
	req.NoError(c.Save())

	loaded, err := Load(path, sig)
	req.NoError(err)
	req.Equal(2, loaded.Len())
	req.False(loaded.NeedsFixing("src/A.php", []byte("<?php\nuse A;\n")))
	req.True(loaded.NeedsFixing("src/A.php", []byte("<?php\nuse A, B;\n")))
	req.True(loaded.NeedsFixing("src/C.php", []byte("<?php\n")))

	loaded.Forget("src/B.php")
	req.True(loaded.NeedsFixing("src/B.php", []byte("<?php\n")))
}

func TestCache_SignatureInvalidates(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)

	c, err := Load(path, "one")
	req.NoError(err)
	c.Set("a.php", []byte("x"))
	req.NoError(c.Save())

	other, err := Load(path, "one,two")
	req.NoError(err)
	req.Equal(0, other.Len())
	req.True(other.NeedsFixing("a.php", []byte("x")))
}

func TestCache_SchemaInvalidates(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)

	data, err := msgpack.Marshal(&payload{
		Schema:    schemaVersion + 1,
		Signature: "sig",
		Hashes:    map[string]string{"a.php": hash([]byte("x"))},
	})
	req.NoError(err)
	req.NoError(os.WriteFile(path, data, 0o644))

	c, err := Load(path, "sig")
	req.NoError(err)
	req.Equal(0, c.Len())
}

func TestCache_CorruptFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)
	req.NoError(os.WriteFile(path, []byte{0xc1}, 0o644))

	_, err := Load(path, "sig")
	req.Error(err)
}

func TestCache_SaveWithoutChangesKeepsFile(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), DefaultFileName)

	c := New(path, "sig")
	req.NoError(c.Save())
	_, err := os.Stat(path)
	req.ErrorIs(err, os.ErrNotExist)

	c.Set("a.php", []byte("x"))
	req.NoError(c.Save())
	info, err := os.Stat(path)
	req.NoError(err)

	// setting the same content again does not mark the cache dirty
	c.Set("a.php", []byte("x"))
	req.NoError(c.Save())
	again, err := os.Stat(path)
	req.NoError(err)
	req.Equal(info.ModTime(), again.ModTime())
}

func TestCache_Concurrent(t *testing.T) {
	req := require.New(t)
	c := New(filepath.Join(t.TempDir(), DefaultFileName), "sig")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := filepath.Join("src", string(rune('a'+i))+".php")
			c.Set(name, []byte(name))
			_ = c.NeedsFixing(name, []byte(name))
		}()
	}
	wg.Wait()
	req.Equal(16, c.Len())
}
