package docgen

// SummaryDocument は1ファイル分の要約結果を表します。
type SummaryDocument struct {
	File         string   `json:"file"`
	Summary      string   `json:"summary"`
	Dependencies []string `json:"dependencies"`
}

// Result はドキュメント生成ジョブの成果を表します。
type Result struct {
	JobID              string            `json:"jobId"`
	RepoURL            string            `json:"repoUrl"`
	FilesProcessed     int               `json:"filesProcessed"`
	DocumentsGenerated int               `json:"documentsGenerated"`
	Documents          []SummaryDocument `json:"documents"`
	ResultURL          string            `json:"resultUrl"`
}
