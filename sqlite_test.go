package browsercookie

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestOpenStoreSnapshot_ReadsCopiedStore(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cookies.sqlite")
	createFirefoxCookieDB(t, dbPath, []mozRow{
		{host: "example.com", name: "sid", value: "v", path: "/", expiry: time.Now().Add(time.Hour).Unix()},
	})

	db, cleanup, err := openStoreSnapshot(context.Background(), dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	var n int
	if err := db.QueryRowContext(context.Background(), `SELECT COUNT(*) FROM moz_cookies`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("snapshot rows = %d, want 1", n)
	}
}

func TestOpenStoreSnapshot_MissingFile(t *testing.T) {
	_, _, err := openStoreSnapshot(context.Background(), filepath.Join(t.TempDir(), "cookies.sqlite"))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}

func TestOpenStoreSnapshot_Directory(t *testing.T) {
	_, _, err := openStoreSnapshot(context.Background(), t.TempDir())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}

func TestOpenStoreSnapshot_NoScratchSpace(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("TMPDIR is not honored on windows")
	}
	dbPath := filepath.Join(t.TempDir(), "cookies.sqlite")
	createFirefoxCookieDB(t, dbPath, nil)
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "does-not-exist"))

	_, _, err := openStoreSnapshot(context.Background(), dbPath)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable, got %v", err)
	}
}

func TestClassifyQueryErr(t *testing.T) {
	if err := classifyQueryErr("p", nil); err != nil {
		t.Fatal(err)
	}

	var fe *FormatError
	err := classifyQueryErr("p", errors.New(`SQL logic error: no such table: moz_cookies (1)`))
	if !errors.As(err, &fe) {
		t.Fatalf("want *FormatError for schema mismatch, got %v", err)
	}

	err = classifyQueryErr("p", errors.New("disk I/O error"))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("want ErrStoreUnavailable for plain read failure, got %v", err)
	}
}
