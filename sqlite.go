package browsercookie

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver (pure Go).
)

// openStoreSnapshot copies a live store (plus any WAL sidecars) into a temp
// directory and opens the copy read-only, so the owning browser never sees
// a lock and the original bytes are never touched. The returned cleanup
// closes the handle and removes the snapshot; callers must run it on every
// exit path.
func openStoreSnapshot(ctx context.Context, dbPath string) (db *sql.DB, cleanup func(), err error) {
	fi, err := os.Stat(dbPath)
	if err != nil || fi.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrStoreUnavailable, dbPath)
	}

	dir, err := os.MkdirTemp("", "browsercookie-")
	if err != nil {
		// No scratch space means no read-only snapshot, which this package
		// treats the same as any other inability to read the store.
		return nil, nil, fmt.Errorf("%w: snapshot of %s: %v", ErrStoreUnavailable, dbPath, err)
	}
	removeDir := func() { _ = os.RemoveAll(dir) }

	target := filepath.Join(dir, filepath.Base(dbPath))
	if err := copyFile(dbPath, target); err != nil {
		removeDir()
		return nil, nil, fmt.Errorf("%w: snapshot of %s: %v", ErrStoreUnavailable, dbPath, err)
	}
	// With WAL journaling, recent writes live in sidecars.
	_ = copyFileIfExists(dbPath+"-wal", target+"-wal")
	_ = copyFileIfExists(dbPath+"-shm", target+"-shm")

	db, err = sql.Open("sqlite", "file:"+filepath.ToSlash(target)+"?mode=ro")
	if err != nil {
		removeDir()
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, dbPath, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		removeDir()
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, dbPath, err)
	}

	cleanup = func() {
		_ = db.Close()
		removeDir()
	}
	return db, cleanup, nil
}

// classifyQueryErr separates schema mismatches (the file opened as a
// database but does not hold a cookie table this package knows) from plain
// read failures, which stay in the unavailable bucket.
func classifyQueryErr(path string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "no such table") || strings.Contains(msg, "no such column") {
		return &FormatError{Path: path, Err: err}
	}
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, path, err)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func copyFileIfExists(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return copyFile(src, dst)
}
