package queue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/yt-batch/internal/model"
)

func TestReadBatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://youtube.com/watch?v=one\n\n# a comment\nhttps://youtube.com/watch?v=two\n   \nhttps://youtube.com/watch?v=three\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadBatchFile(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(urls) != 3 {
		t.Fatalf("Expected 3 URLs, got %d", len(urls))
	}

	if urls[0] != "https://youtube.com/watch?v=one" {
		t.Errorf("Unexpected first URL: %s", urls[0])
	}
}

func TestReadBatchFileMissing(t *testing.T) {
	_, err := ReadBatchFile(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil {
		t.Error("Expected error for missing batch file")
	}
}

func TestDedupe(t *testing.T) {
	urls := []string{"a", "b", "a", "c", "b", "a"}
	out := Dedupe(urls)

	if len(out) != 3 {
		t.Fatalf("Expected 3 unique URLs, got %d", len(out))
	}

	// Order of first appearance is preserved
	want := []string{"a", "b", "c"}
	for i, u := range want {
		if out[i] != u {
			t.Errorf("Expected %s at index %d, got %s", u, i, out[i])
		}
	}
}

func TestBuild(t *testing.T) {
	opts := RequestOptions{
		Format:    model.FormatVideo,
		Container: "mp4",
		Quality:   "720p",
		OutputDir: "/tmp/downloads",
	}

	reqs := Build([]string{"https://youtube.com/watch?v=a", "https://youtube.com/watch?v=a", "https://youtube.com/watch?v=b"}, opts)

	if len(reqs) != 2 {
		t.Fatalf("Expected 2 requests after dedup, got %d", len(reqs))
	}

	if reqs[0].ID == reqs[1].ID {
		t.Error("Expected unique request IDs")
	}

	if reqs[0].Quality != "720p" || reqs[0].Container != "mp4" {
		t.Errorf("Request options not applied: %+v", reqs[0])
	}
}

func TestCollect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "https://youtube.com/watch?v=b\nhttps://youtube.com/watch?v=c\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	urls, err := Collect([]string{"https://youtube.com/watch?v=a", "https://youtube.com/watch?v=b"}, path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Args come first, file URLs after, duplicates removed
	want := []string{
		"https://youtube.com/watch?v=a",
		"https://youtube.com/watch?v=b",
		"https://youtube.com/watch?v=c",
	}
	if len(urls) != len(want) {
		t.Fatalf("Expected %d URLs, got %d", len(want), len(urls))
	}
	for i, u := range want {
		if urls[i] != u {
			t.Errorf("Expected %s at index %d, got %s", u, i, urls[i])
		}
	}
}
