package archive

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/suykerbuyk/persona-gen/internal/activity"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "archive")

	original := activity.Collection{
		{Kind: activity.KindPost, ID: "p1", URL: "https://example.com/?a=1&b=2", Body: "Title\nself <text> & more"},
		{Kind: activity.KindComment, ID: "c1", URL: "https://reddit.com/r/go/comments/x/y/c1/", Body: "multi\n\nline “quote”"},
	}

	path, err := Write(dir, "alice", original)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if path != filepath.Join(dir, "alice_activity.jsonl.zst") {
		t.Errorf("path = %q", path)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if diff := cmp.Diff(original, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite_EmptyCollection(t *testing.T) {
	dir := t.TempDir()

	path, err := Write(dir, "ghost", nil)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d records, want 0", len(got))
	}
}

func TestWrite_ReplacesSnapshot(t *testing.T) {
	dir := t.TempDir()

	if _, err := Write(dir, "alice", activity.Collection{{Kind: activity.KindPost, ID: "old"}}); err != nil {
		t.Fatal(err)
	}
	path, err := Write(dir, "alice", activity.Collection{{Kind: activity.KindComment, ID: "new"}})
	if err != nil {
		t.Fatal(err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("got %+v, want only the newest snapshot", got)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected one archive file, got %d", len(entries))
	}
}

func TestRead_Missing(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.jsonl.zst")); err == nil {
		t.Error("expected error for missing archive")
	}
}
