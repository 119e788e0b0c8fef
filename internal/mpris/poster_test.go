//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindPoster(t *testing.T) {
	dir := t.TempDir()
	cover := filepath.Join(dir, "cover.jpg")
	touch(t, cover)

	got := FindPoster(filepath.Join(dir, "movie.mpg"))
	if got != cover {
		t.Errorf("FindPoster() = %q, want %q", got, cover)
	}
}

func TestFindPoster_NotFound(t *testing.T) {
	dir := t.TempDir()

	if got := FindPoster(filepath.Join(dir, "movie.mpg")); got != "" {
		t.Errorf("FindPoster() = %q, want empty string", got)
	}
	if got := FindPoster(""); got != "" {
		t.Errorf("FindPoster(\"\") = %q, want empty string", got)
	}
}

func TestFindPoster_Priority(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "folder.jpg"))
	touch(t, filepath.Join(dir, "poster.jpg"))
	sidecar := filepath.Join(dir, "movie.png")
	touch(t, sidecar)

	got := FindPoster(filepath.Join(dir, "movie.mpg"))
	if got != sidecar {
		t.Errorf("FindPoster() = %q, want %q (same-named image first)", got, sidecar)
	}
}
