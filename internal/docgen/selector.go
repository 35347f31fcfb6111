package docgen

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// 選別から除外するディレクトリ名（サブツリーごと除外）。
var excludeDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"__pycache__":  {},
	".venv":        {},
	"venv":         {},
	"env":          {},
	".env":         {},
}

// バイナリ/非テキストとみなす拡張子。
var excludeExtensions = map[string]struct{}{
	".pyc": {}, ".pyo": {}, ".pyd": {}, ".so": {}, ".dll": {}, ".exe": {}, ".bin": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".svg": {}, ".ico": {},
	".pdf": {}, ".zip": {}, ".tar": {}, ".gz": {}, ".mp4": {}, ".mp3": {},
}

// 対象とするテキスト/コードの拡張子。
var codeExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {}, ".go": {}, ".rs": {},
	".java": {}, ".cpp": {}, ".c": {}, ".h": {}, ".hpp": {}, ".cs": {}, ".rb": {},
	".php": {}, ".swift": {}, ".kt": {}, ".scala": {}, ".md": {}, ".json": {},
	".yaml": {}, ".yml": {}, ".toml": {}, ".xml": {}, ".html": {}, ".css": {},
}

// 拡張子を持たないが対象とするファイル名。
var bareFilenames = map[string]struct{}{
	"Dockerfile": {},
	"Makefile":   {},
	"README.md":  {},
}

// selectFiles はリポジトリ配下を走査し、要約対象ファイルの相対パス一覧を
// 優先度順で返します。ルートが存在しない場合はジョブ全体のエラーです。
func selectFiles(localRoot string) ([]string, error) {
	if _, err := os.Stat(localRoot); err != nil {
		return nil, newError(CodeInternalError, "クローン先ディレクトリが見つかりません。", err)
	}

	var files []string
	err := filepath.WalkDir(localRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, excluded := excludeDirs[d.Name()]; excluded && path != localRoot {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if _, excluded := excludeExtensions[ext]; excluded {
			return nil
		}
		_, isCode := codeExtensions[ext]
		_, isBare := bareFilenames[d.Name()]
		if !isCode && !isBare {
			return nil
		}

		rel, err := filepath.Rel(localRoot, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, newError(CodeInternalError, "リポジトリの走査に失敗しました。", err)
	}

	return prioritizeFiles(files), nil
}

// 優先バケット判定用のパターン。
var (
	docPatterns  = []string{"readme", "changelog", "license", "contributing"}
	mainPatterns = []string{
		"main.py", "app.py", "index.js", "index.ts", "index.tsx",
		"main.js", "main.ts", "server.py", "app.js", "app.ts",
	}
	configPatterns = []string{
		"package.json", "requirements.txt", "dockerfile", "docker-compose",
		"setup.py", "pyproject.toml", "cargo.toml", "go.mod", "pom.xml",
		"tsconfig.json", "webpack.config", "vite.config", "tailwind.config",
		"cloudbuild.yaml", ".github/workflows",
	}
	coreDirSegments = []string{"/src/", "/app/", "/lib/", "/components/", "/core/"}
)

// prioritizeFiles は5バケットの安定ソートを行います。
// LLM呼び出しの予算が有限なため、重要なファイルほど先に処理・表示されます。
// バケット: ドキュメント → エントリーポイント → ビルド/設定 → 主要ソースディレクトリ → その他。
func prioritizeFiles(files []string) []string {
	var docFiles, mainFiles, configFiles, coreFiles, otherFiles []string

	for _, file := range files {
		fileLower := strings.ToLower(file)
		baseLower := strings.ToLower(filepath.Base(file))

		switch {
		case matchesAnySubstring(fileLower, docPatterns):
			docFiles = append(docFiles, file)
		case matchesAnyExact(baseLower, mainPatterns):
			mainFiles = append(mainFiles, file)
		case matchesAnySubstring(fileLower, configPatterns):
			configFiles = append(configFiles, file)
		case matchesAnySubstring("/"+fileLower, coreDirSegments):
			coreFiles = append(coreFiles, file)
		default:
			otherFiles = append(otherFiles, file)
		}
	}

	prioritized := make([]string, 0, len(files))
	prioritized = append(prioritized, docFiles...)
	prioritized = append(prioritized, mainFiles...)
	prioritized = append(prioritized, configFiles...)
	prioritized = append(prioritized, coreFiles...)
	prioritized = append(prioritized, otherFiles...)
	return prioritized
}

func matchesAnySubstring(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func matchesAnyExact(s string, patterns []string) bool {
	for _, p := range patterns {
		if s == p {
			return true
		}
	}
	return false
}
