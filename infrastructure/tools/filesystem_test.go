package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcparena/arena-go/domain/tool"
)

func TestFilesystem_ReadAndList(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o750); err != nil {
		t.Fatal(err)
	}

	fs := NewFilesystem(root)

	input, _ := json.Marshal(map[string]string{"operation": "read", "path": "notes.txt"})
	result, err := fs.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("read error = %v", err)
	}
	if got := result.OutputString(); got != "hello" {
		t.Errorf("read = %q, want %q", got, "hello")
	}

	input, _ = json.Marshal(map[string]string{"operation": "list", "path": "."})
	result, err = fs.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	var entries []string
	if err := json.Unmarshal(result.Output, &entries); err != nil {
		t.Fatalf("unmarshal list output: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("list returned %d entries, want 2: %v", len(entries), entries)
	}
}

func TestFilesystem_RejectsEscapingPaths(t *testing.T) {
	t.Parallel()

	fs := NewFilesystem(t.TempDir())

	for _, path := range []string{"../secret", "../../etc/passwd", "sub/../../out"} {
		input, _ := json.Marshal(map[string]string{"operation": "read", "path": path})
		_, err := fs.Execute(context.Background(), input)
		if !errors.Is(err, tool.ErrExecutionFailed) {
			t.Errorf("Execute(%q) error = %v, want ErrExecutionFailed", path, err)
		}
	}
}

func TestFilesystem_UnknownOperation(t *testing.T) {
	t.Parallel()

	fs := NewFilesystem(t.TempDir())
	input, _ := json.Marshal(map[string]string{"operation": "write", "path": "x"})
	_, err := fs.Execute(context.Background(), input)
	if !errors.Is(err, tool.ErrExecutionFailed) {
		t.Errorf("Execute() error = %v, want ErrExecutionFailed", err)
	}
}
