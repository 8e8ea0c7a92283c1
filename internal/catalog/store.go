package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"ytcatalog/internal/fileutil"
	"ytcatalog/internal/textutil"
)

// ErrLocked reports that another process is writing the same output file.
var ErrLocked = errors.New("output file is locked by another run")

// Marshal renders c as JSON indented by indent spaces. Non-ASCII text and
// HTML-significant characters are emitted verbatim.
func Marshal(c *Catalog, indent int) ([]byte, error) {
	if c == nil {
		return nil, errors.New("nil catalog")
	}
	if c.Categories == nil {
		c.Categories = []Category{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write persists c to path. Parent directories are created, the file is
// replaced atomically, and concurrent writers to the same path fail fast
// with ErrLocked.
func Write(path string, c *Catalog, indent int) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("output path required")
	}
	data, err := Marshal(c, indent)
	if err != nil {
		return err
	}

	lock := flock.New(LockPath(path))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LockPath returns the advisory lock file guarding writes to path. It lives
// in the system temp directory so nothing is published next to the output.
func LockPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filepath.Join(os.TempDir(), "ytcatalog-"+textutil.SanitizeToken(abs)+".lock")
}

// Read loads a catalog previously written by Write.
func Read(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return &c, nil
}
