package docgen

import (
	"path"
	"regexp"
	"strings"
)

// 静的インポート検出はヒント用途のみ。最終的な dependencies はLLMの応答で決まります。
var (
	pythonImportRe = regexp.MustCompile(`(?m)^(?:from\s+([.\w]+)\s+)?import\s+([\w\s,]+)`)
	jsImportRe     = regexp.MustCompile(`import\s+.*?from\s+["']([./\w-]+)["']`)
	jsExtensions   = []string{".ts", ".tsx", ".js", ".jsx"}
)

// detectImports はファイル内容から内部インポート候補を抽出します。
// Python系（インデント構文）とJS/TS系（ブレース構文）のみ対応の簡易実装で、
// 相対インポートをリポジトリ相対パスへ変換します。失敗しても空を返すだけです。
func detectImports(relPath, content string) []string {
	ext := strings.ToLower(path.Ext(relPath))
	baseDir := path.Dir(relPath)

	var imports []string
	switch ext {
	case ".py":
		for _, m := range pythonImportRe.FindAllStringSubmatch(content, -1) {
			module := m[1]
			if module == "" {
				parts := strings.SplitN(m[2], ",", 2)
				module = strings.TrimSpace(parts[0])
			}
			// 相対インポートのみファイルパス候補に変換（外部パッケージは除外）
			if !strings.HasPrefix(module, ".") {
				continue
			}
			modulePath := strings.TrimLeft(strings.ReplaceAll(module, ".", "/"), "/")
			if modulePath == "" {
				continue
			}
			if baseDir == "." {
				imports = append(imports, modulePath+".py")
			} else {
				imports = append(imports, baseDir+"/"+modulePath+".py")
			}
		}
	case ".js", ".jsx", ".ts", ".tsx":
		for _, m := range jsImportRe.FindAllStringSubmatch(content, -1) {
			target := m[1]
			if !strings.HasPrefix(target, ".") {
				continue
			}
			resolved := path.Join(baseDir, target)
			if hasAnySuffix(target, jsExtensions) {
				imports = append(imports, resolved)
				continue
			}
			// 拡張子が無い場合は候補を総当たりで挙げる
			for _, candidate := range jsExtensions {
				imports = append(imports, resolved+candidate)
			}
		}
	}
	return imports
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
