package docgen

// Stage はパイプラインの進行段階を表します。
type Stage string

const (
	StageCloning   Stage = "cloning"
	StageAnalyzing Stage = "analyzing"
	StageUploading Stage = "uploading"
)

// Counters は進捗イベントに添えるカウンター群です。ゼロ値は「未設定」を意味します。
type Counters struct {
	FilesFound         int
	FilesProcessed     int
	DocumentsGenerated int
}

// ProgressReporter は進捗更新用コールバックです。
// パイプラインの各段階へ明示的に受け渡され、グローバル状態は使いません。
type ProgressReporter func(stage Stage, message string, counters Counters)

func reportProgress(cb ProgressReporter, stage Stage, message string, counters Counters) {
	if cb == nil {
		return
	}
	cb(stage, message, counters)
}
