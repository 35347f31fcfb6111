package docgen

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// compileArtifact は要約の集まりを単一のHTMLドキュメントへ描画します。
// generatedAt を固定すれば入力に対して決定的です。
// アンカーIDは doc-1 からの連番で、要約が空のものは飛ばしてもIDを消費しません。
func compileArtifact(documents []SummaryDocument, repoURL string, generatedAt time.Time) string {
	repoName := repoDisplayName(repoURL)

	var tocItems []string
	var sections []string

	anchor := 0
	for _, doc := range documents {
		summary := strings.TrimSpace(doc.Summary)
		if summary == "" {
			continue
		}
		anchor++
		anchorID := fmt.Sprintf("doc-%d", anchor)
		escapedPath := html.EscapeString(doc.File)
		escapedSummary := html.EscapeString(summary)

		tocItems = append(tocItems,
			fmt.Sprintf(`<li><a href="#%s">%s</a></li>`, anchorID, escapedPath))
		sections = append(sections, fmt.Sprintf(`
        <section id="%s" class="doc-section">
            <h2>%s</h2>
            <div class="doc-content">
                <p>%s</p>
            </div>
        </section>`, anchorID, escapedPath, escapedSummary))
	}

	if len(sections) == 0 {
		tocItems = append(tocItems,
			`<li class="toc-empty">No files available</li>`)
		sections = append(sections, `
        <section class="doc-section">
            <h2>No Documentation Generated</h2>
            <div class="doc-content">
                <p>No files were successfully processed. The repository may be empty,
                contain only excluded files, or all files may have failed to process.</p>
            </div>
        </section>`)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s - Documentation</title>
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; background-color: #F5E7C6; color: #222222; margin: 0; }
        .sidebar { position: fixed; left: 0; top: 0; width: 280px; height: 100vh; overflow-y: auto; background-color: #FFFFFF; border-right: 1px solid #222222; padding: 2rem 1rem; }
        .sidebar h1 { font-size: 1.5rem; color: #FF6D1F; }
        .sidebar ul { list-style: none; padding: 0; }
        .sidebar a { color: #222222; text-decoration: none; display: block; padding: 0.5rem; overflow-wrap: break-word; }
        .sidebar a:hover { background-color: #F5E7C6; color: #FF6D1F; }
        .toc-empty { color: #666; padding: 0.5rem; }
        .main-content { margin-left: 280px; padding: 2rem 4rem; max-width: 1200px; }
        .header { border-bottom: 2px solid #222222; padding-bottom: 1rem; margin-bottom: 2rem; }
        .header a { color: #FF6D1F; text-decoration: none; }
        .doc-section { margin-bottom: 3rem; padding-bottom: 2rem; border-bottom: 1px solid #222222; }
    </style>
</head>
<body>
    <div class="sidebar">
        <h1>Table of Contents</h1>
        <ul>
            %s
        </ul>
    </div>

    <div class="main-content">
        <div class="header">
            <h1>%s</h1>
            <p>Generated Documentation &bull; %s</p>
            <p><a href="%s" target="_blank">View Repository</a></p>
        </div>
        %s
    </div>
</body>
</html>`,
		html.EscapeString(repoName),
		strings.Join(tocItems, "\n            "),
		html.EscapeString(repoName),
		generatedAt.Format("January 2, 2006 at 3:04 PM"),
		html.EscapeString(repoURL),
		strings.Join(sections, "\n"))
}

// repoDisplayName はURLの末尾セグメントから表示名を導出します。
func repoDisplayName(repoURL string) string {
	if repoURL == "" {
		return "Repository"
	}
	segments := strings.Split(strings.TrimRight(repoURL, "/"), "/")
	name := segments[len(segments)-1]
	name = strings.TrimSuffix(name, ".git")
	if name == "" {
		return "Repository"
	}
	return name
}
