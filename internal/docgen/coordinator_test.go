package docgen

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestSummarizeAllZeroFiles(t *testing.T) {
	svc := newTestService(&stubLLM{})
	docs := svc.summarizeAll(context.Background(), nil, t.TempDir(), nil)
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty result set, got %#v", docs)
	}
}

func TestSummarizeAllCollectsAllFiles(t *testing.T) {
	root := t.TempDir()
	files := []string{"a.py", "b.py", "c.py", "d.py", "e.py", "f.py", "g.py"}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(root, f), []byte("print()\n"), 0o640); err != nil {
			t.Fatalf("failed to write %s: %v", f, err)
		}
	}

	svc := newTestService(&stubLLM{response: `{"summary":"Ok.","dependencies":[]}`})
	docs := svc.summarizeAll(context.Background(), files, root, nil)
	if len(docs) != len(files) {
		t.Fatalf("got %d documents, want %d", len(docs), len(files))
	}

	inputSet := make(map[string]bool)
	for _, f := range files {
		inputSet[f] = true
	}
	for _, doc := range docs {
		if !inputSet[doc.File] {
			t.Fatalf("document file %q not in input set", doc.File)
		}
	}
}

func TestSummarizeAllDropsEmptyFiles(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "full.py"), []byte("print()\n"), 0o640); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "empty.py"), nil, 0o640); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	svc := newTestService(&stubLLM{response: `{"summary":"Ok.","dependencies":[]}`})
	docs := svc.summarizeAll(context.Background(), []string{"full.py", "empty.py"}, root, nil)
	if len(docs) != 1 || docs[0].File != "full.py" {
		t.Fatalf("unexpected documents: %#v", docs)
	}
}

func TestSummarizeAllReportsProgressEveryN(t *testing.T) {
	root := t.TempDir()
	var files []string
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		f := name + ".py"
		files = append(files, f)
		if err := os.WriteFile(filepath.Join(root, f), []byte("print()\n"), 0o640); err != nil {
			t.Fatalf("failed to write %s: %v", f, err)
		}
	}

	var mu sync.Mutex
	var events []Counters
	reporter := func(stage Stage, message string, counters Counters) {
		mu.Lock()
		defer mu.Unlock()
		if stage != StageAnalyzing {
			t.Errorf("unexpected stage %q", stage)
		}
		events = append(events, counters)
	}

	svc := newTestService(&stubLLM{response: `{"summary":"Ok.","dependencies":[]}`})
	svc.summarizeAll(context.Background(), files, root, reporter)

	// 11ファイルなら 5, 10 完了時点の2イベント
	if len(events) != 2 {
		t.Fatalf("got %d progress events, want 2", len(events))
	}
	if events[0].FilesProcessed != 5 || events[1].FilesProcessed != 10 {
		t.Fatalf("unexpected counters: %#v", events)
	}
}
