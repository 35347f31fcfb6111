package docgen

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTestFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte("content\n"), 0o640); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
}

func TestSelectFilesExcludesDirsAndBinaries(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "main.py")
	writeTestFile(t, root, ".git/config.py")
	writeTestFile(t, root, "node_modules/pkg/index.js")
	writeTestFile(t, root, "__pycache__/main.pyc")
	writeTestFile(t, root, "logo.png")
	writeTestFile(t, root, "archive.zip")
	writeTestFile(t, root, "notes.txt") // 許可リスト外の拡張子

	files, err := selectFiles(root)
	if err != nil {
		t.Fatalf("selectFiles returned error: %v", err)
	}
	if len(files) != 1 || files[0] != "main.py" {
		t.Fatalf("unexpected selection: %#v", files)
	}
}

func TestSelectFilesBareFilenames(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, root, "Dockerfile")
	writeTestFile(t, root, "Makefile")
	writeTestFile(t, root, "LICENSE") // 許可リスト外の無拡張子ファイル

	files, err := selectFiles(root)
	if err != nil {
		t.Fatalf("selectFiles returned error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("unexpected selection: %#v", files)
	}
}

func TestSelectFilesMissingRoot(t *testing.T) {
	if _, err := selectFiles(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestPrioritizeFilesBuckets(t *testing.T) {
	input := []string{
		"zzz/helper.go",
		"src/engine.py",
		"main.py",
		"package.json",
		"docs/README.md",
	}
	got := prioritizeFiles(input)
	want := []string{
		"docs/README.md", // ドキュメント
		"main.py",        // エントリーポイント
		"package.json",   // ビルド/設定
		"src/engine.py",  // 主要ソースディレクトリ
		"zzz/helper.go",  // その他
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("prioritizeFiles = %#v, want %#v", got, want)
	}
}

func TestPrioritizeFilesNoLossNoDuplicates(t *testing.T) {
	input := []string{
		"a.py", "b.js", "README.md", "src/c.ts", "lib/d.rb",
		"main.ts", "go.mod", "e.go", "app/f.py", "CHANGELOG.md",
	}
	got := prioritizeFiles(input)
	if len(got) != len(input) {
		t.Fatalf("length changed: got %d, want %d", len(got), len(input))
	}
	seen := make(map[string]int)
	for _, f := range got {
		seen[f]++
	}
	for _, f := range input {
		if seen[f] != 1 {
			t.Fatalf("file %s appears %d times", f, seen[f])
		}
	}
}

func TestPrioritizeFilesStableWithinBucket(t *testing.T) {
	input := []string{"other1.go", "other2.go", "other3.go"}
	got := prioritizeFiles(input)
	if !reflect.DeepEqual(got, input) {
		t.Fatalf("first-seen order not preserved: %#v", got)
	}
}
