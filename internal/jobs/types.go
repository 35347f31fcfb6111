// Package jobs は非同期ジョブの投入・状態管理を提供します。
package jobs

import (
	"time"

	"github.com/yourusername/auto-readme/internal/docgen"
)

// Status はジョブの実行状態を表します。
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ProgressInfo は進捗の補足情報を表します。
// カウンターは最後に通知された非ゼロ値を保持します。
type ProgressInfo struct {
	Stage              string `json:"stage,omitempty"`
	Message            string `json:"message,omitempty"`
	FilesFound         int    `json:"filesFound,omitempty"`
	FilesProcessed     int    `json:"filesProcessed,omitempty"`
	DocumentsGenerated int    `json:"documentsGenerated,omitempty"`
}

// ErrorInfo はジョブ失敗時のエラー情報を保持します。
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Record はジョブの現在状態を表します。
// 終端状態（completed / failed）へ入った後は変更されません。
type Record struct {
	JobID     string                   `json:"jobId"`
	RepoURL   string                   `json:"repoUrl"`
	Status    Status                   `json:"status"`
	Progress  ProgressInfo             `json:"progress"`
	Result    []docgen.SummaryDocument `json:"result,omitempty"`
	ResultURL string                   `json:"resultUrl,omitempty"`
	Error     *ErrorInfo               `json:"error,omitempty"`
	CreatedAt time.Time                `json:"createdAt"`
	UpdatedAt time.Time                `json:"updatedAt"`
	ExpiresAt time.Time                `json:"expiresAt"`
}
