package docgen

import (
	"strings"
	"testing"
	"time"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCompileArtifactDeterministic(t *testing.T) {
	docs := []SummaryDocument{
		{File: "a.py", Summary: "First.", Dependencies: []string{}},
		{File: "b.py", Summary: "Second.", Dependencies: []string{}},
	}
	first := compileArtifact(docs, "https://github.com/acme/tiny", fixedTime)
	second := compileArtifact(docs, "https://github.com/acme/tiny", fixedTime)
	if first != second {
		t.Fatal("compileArtifact is not deterministic for identical inputs")
	}
}

func TestCompileArtifactDenseAnchors(t *testing.T) {
	docs := []SummaryDocument{
		{File: "a.py", Summary: "First."},
		{File: "skipped.py", Summary: "   "}, // 空要約はIDを消費しない
		{File: "b.py", Summary: "Second."},
	}
	out := compileArtifact(docs, "https://github.com/acme/tiny", fixedTime)

	if !strings.Contains(out, `id="doc-1"`) || !strings.Contains(out, `id="doc-2"`) {
		t.Fatal("expected dense anchors doc-1 and doc-2")
	}
	if strings.Contains(out, `id="doc-3"`) {
		t.Fatal("skipped document consumed an anchor id")
	}
	if strings.Count(out, `<section`) != 2 {
		t.Fatalf("unexpected section count: %d", strings.Count(out, `<section`))
	}
	if strings.Count(out, `<li><a href="#doc-`) != 2 {
		t.Fatal("toc entry count does not match section count")
	}
}

func TestCompileArtifactEmptyPlaceholder(t *testing.T) {
	out := compileArtifact(nil, "https://github.com/acme/tiny", fixedTime)
	if strings.Count(out, `<section`) != 1 {
		t.Fatal("expected exactly one placeholder section")
	}
	if !strings.Contains(out, "No Documentation Generated") {
		t.Fatal("placeholder section missing")
	}
	if !strings.Contains(out, "No files available") {
		t.Fatal("placeholder toc entry missing")
	}
}

func TestCompileArtifactEscapesUserText(t *testing.T) {
	docs := []SummaryDocument{
		{File: `<script>alert(1)</script>.py`, Summary: `<b>bold</b> & "quoted"`},
	}
	out := compileArtifact(docs, "https://github.com/acme/tiny", fixedTime)
	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Fatal("file path not escaped")
	}
	if strings.Contains(out, "<b>bold</b>") {
		t.Fatal("summary not escaped")
	}
}

func TestRepoDisplayName(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://github.com/acme/tiny", "tiny"},
		{"https://github.com/acme/tiny.git", "tiny"},
		{"https://github.com/acme/tiny/", "tiny"},
		{"", "Repository"},
	}
	for _, tc := range cases {
		if got := repoDisplayName(tc.url); got != tc.want {
			t.Fatalf("repoDisplayName(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
