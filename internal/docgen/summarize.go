package docgen

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	truncationMarker = "\n... (truncated for brevity)"
	fallbackSummary  = "No summary available."
	emptyLLMSummary  = "No summary available - LLM returned empty response."
)

var (
	fenceOpenRe  = regexp.MustCompile("(?m)^```(?:json)?\\s*")
	fenceCloseRe = regexp.MustCompile("(?m)```\\s*$")
)

// summarizeFile は1ファイルを読み込み、LLMで要約して SummaryDocument を返します。
// 読めない・空のファイルは nil を返して対象から外れます。
// LLM呼び出しやJSON解析の失敗はこの関数の中で吸収され、エラーにはなりません。
func (s *Service) summarizeFile(ctx context.Context, relPath, localRoot string) *SummaryDocument {
	raw, err := os.ReadFile(filepath.Join(localRoot, filepath.FromSlash(relPath)))
	if err != nil {
		s.logger.Printf("skip unreadable file %s: %v", relPath, err)
		return nil
	}

	// 不正なバイト列は置換して常にテキストとして扱う
	content := strings.ToValidUTF8(string(raw), "�")
	if strings.TrimSpace(content) == "" {
		return nil
	}

	truncated := false
	if runes := []rune(content); len(runes) > s.maxFileChars {
		content = string(runes[:s.maxFileChars]) + truncationMarker
		truncated = true
	}

	prompt := buildSummaryPrompt(relPath, content, truncated)

	response, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		// 単一ファイルのLLM失敗でジョブは止めない
		s.logger.Printf("llm call failed for %s: %v", relPath, err)
		return &SummaryDocument{
			File:         relPath,
			Summary:      fmt.Sprintf("Error processing file: %v", err),
			Dependencies: []string{},
		}
	}

	return parseSummaryResponse(relPath, response)
}

// parseSummaryResponse はモデル応答を SummaryDocument へ変換します。
// 応答がJSONでなくてもファイルを失わないよう、段階的にフォールバックします。
func parseSummaryResponse(relPath, response string) *SummaryDocument {
	response = strings.TrimSpace(response)
	if response == "" {
		return &SummaryDocument{
			File:         relPath,
			Summary:      emptyLLMSummary,
			Dependencies: []string{},
		}
	}

	// コードフェンスで包まれている場合はマーカーを剥がす
	if strings.HasPrefix(response, "```") {
		response = fenceOpenRe.ReplaceAllString(response, "")
		response = fenceCloseRe.ReplaceAllString(response, "")
		response = strings.TrimSpace(response)
	}

	var parsed struct {
		Summary      string          `json:"summary"`
		Dependencies json.RawMessage `json:"dependencies"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		// JSONとして読めない応答は、そのまま要約文として採用する
		return &SummaryDocument{
			File:         relPath,
			Summary:      response,
			Dependencies: []string{},
		}
	}

	summary := strings.TrimSpace(parsed.Summary)
	if summary == "" {
		summary = fallbackSummary
	}

	var deps []string
	if len(parsed.Dependencies) > 0 {
		// リスト以外の型は空リストに矯正
		if err := json.Unmarshal(parsed.Dependencies, &deps); err != nil {
			deps = nil
		}
	}
	if deps == nil {
		deps = []string{}
	}

	return &SummaryDocument{
		File:         relPath,
		Summary:      summary,
		Dependencies: deps,
	}
}

// buildSummaryPrompt は要約と依存関係を求めるプロンプトを組み立てます。
func buildSummaryPrompt(relPath, content string, truncated bool) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(relPath)), ".")
	if ext == "" {
		ext = "text"
	}

	truncationNote := ""
	if truncated {
		truncationNote = "Note: File content was truncated due to length"
	}

	importsHint := "None found"
	if imports := detectImports(relPath, content); len(imports) > 0 {
		if len(imports) > 10 {
			imports = imports[:10]
		}
		importsHint = strings.Join(imports, ", ")
	}

	return fmt.Sprintf(`Analyze the following code file and return ONLY a valid JSON object (no markdown, no code blocks, no explanations).

File: %s
File Type: %s
%s
Code:
`+"```%s\n%s\n```"+`

Detected import statements (for reference): %s

Return a JSON object with this exact structure:
{
  "summary": "A clear 2-4 sentence description of what this file does, its purpose, and key components",
  "dependencies": ["relative/path/to/file1.py", "relative/path/to/file2.js"]
}

CRITICAL: For dependencies array:
1. Extract ALL internal file imports from the code (look for import/from statements)
2. Convert import paths to actual file paths relative to repository root
3. Include files that are imported, required, or referenced in the code
4. DO NOT include external npm/pip packages (like 'react', 'flask', 'express')
5. DO NOT include standard library modules
6. Use the exact relative path format as files appear in the repository

Return ONLY the JSON object, nothing else.`,
		relPath, ext, truncationNote, ext, content, importsHint)
}
