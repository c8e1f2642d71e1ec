package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func appendTo(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatal(err)
	}
}

func TestReadAppended(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log")
	appendTo(t, path, "existing one\nexisting two\n")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs(path)

	// Existing content counts as consumed.
	data, startLine, err := w.ReadAppended(abs)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 0 {
		t.Fatalf("got %q before any append", data)
	}
	if startLine != 3 {
		t.Errorf("startLine = %d, want 3", startLine)
	}

	appendTo(t, path, "new three\nnew four\n")

	data, startLine, err = w.ReadAppended(abs)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new three\nnew four\n" {
		t.Errorf("data = %q", data)
	}
	if startLine != 3 {
		t.Errorf("startLine = %d, want 3", startLine)
	}

	appendTo(t, path, "five\n")
	data, startLine, err = w.ReadAppended(abs)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "five\n" || startLine != 5 {
		t.Errorf("data = %q startLine = %d, want %q 5", data, startLine, "five\n")
	}
}

func TestReadAppended_TruncateResets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log")
	appendTo(t, path, "aaa\nbbb\n")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs(path)

	// Rotate: truncate and write fresh content.
	if err := os.WriteFile(path, []byte("fresh\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	data, startLine, err := w.ReadAppended(abs)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "fresh\n" || startLine != 1 {
		t.Errorf("data = %q startLine = %d, want %q 1", data, startLine, "fresh\n")
	}
}

func TestWatcher_ModifyEvent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log")
	appendTo(t, path, "start\n")

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Add(path); err != nil {
		t.Fatal(err)
	}

	events := w.Events()
	appendTo(t, path, "more\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt := <-events:
			if evt.Err != nil {
				t.Fatal(evt.Err)
			}
			if evt.Type == EventModified {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for modify event")
		}
	}
}

func TestWatcher_DirectoryCreateEvent(t *testing.T) {
	dir := t.TempDir()

	w, err := New()
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		t.Fatal(err)
	}

	events := w.Events()
	appendTo(t, filepath.Join(dir, "new.log"), "hello\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case evt := <-events:
			if evt.Err != nil {
				t.Fatal(evt.Err)
			}
			if evt.Type == EventCreated && filepath.Base(evt.Path) == "new.log" {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for create event")
		}
	}
}
