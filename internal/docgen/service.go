// Package docgen はリポジトリをクローンし、ファイルごとのLLM要約を
// 1枚のHTMLドキュメントへ編纂して公開するジョブパイプラインを提供します。
package docgen

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/auto-readme/internal/config"
)

// Service はドキュメント生成パイプラインの本体です。
// 外部コラボレーター（クローン・LLM・ストレージ）はインターフェース越しに受け取ります。
type Service struct {
	cloner    Cloner
	llm       LLM
	publisher Publisher
	logger    *log.Logger

	summarizeWorkers int
	maxFileChars     int
	now              func() time.Time
}

// NewService は Service を作成します。
func NewService(cfg *config.Config, cloner Cloner, llm LLM, publisher Publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		cloner:           cloner,
		llm:              llm,
		publisher:        publisher,
		logger:           logger,
		summarizeWorkers: cfg.SummarizeWorkers,
		maxFileChars:     cfg.MaxFileChars,
		now:              time.Now,
	}
}

// RunJob は1ジョブ分のパイプラインを最後まで実行します。
// 段階は cloning → analyzing → uploading の順でのみ進み、
// いずれかの段階のエラーはジョブ全体の失敗として呼び出し元へ返ります。
// スクラッチディレクトリは成功・失敗を問わず一度だけ削除されます。
func (s *Service) RunJob(ctx context.Context, jobID, repoURL string, reporter ProgressReporter) (*Result, error) {
	if jobID == "" {
		return nil, newError(CodeInvalidInput, "jobID is required", nil)
	}
	if repoURL == "" {
		return nil, newError(CodeInvalidInput, "repoURL is required", nil)
	}

	// クローン段階
	reportProgress(reporter, StageCloning, "Cloning repository...", Counters{})
	ws, err := s.materialize(ctx, jobID, repoURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cleanupErr := ws.Cleanup(); cleanupErr != nil {
			// 掃除の失敗はジョブの結果を変えない
			s.logger.Printf("failed to cleanup workspace for job %s: %v", jobID, cleanupErr)
		}
	}()

	// 解析段階: ファイル選別
	reportProgress(reporter, StageAnalyzing, "Indexing repository files...", Counters{})
	files, err := selectFiles(ws.dir)
	if err != nil {
		return nil, err
	}
	s.logger.Printf("job %s: selected %d files", jobID, len(files))

	// 解析段階: 並列要約
	reportProgress(reporter, StageAnalyzing,
		fmt.Sprintf("Generating documentation for %d files...", len(files)),
		Counters{FilesFound: len(files)})
	documents := s.summarizeAll(ctx, files, ws.dir, reporter)

	// アップロード段階: コンパイルと公開
	reportProgress(reporter, StageUploading, "Compiling documentation...",
		Counters{DocumentsGenerated: len(documents)})
	artifact := compileArtifact(documents, repoURL, s.now())

	reportProgress(reporter, StageUploading, "Uploading documentation to storage...", Counters{})
	resultURL, err := s.publisher.Publish(ctx, jobID, artifact)
	if err != nil {
		return nil, err
	}

	s.logger.Printf("job %s: published %d documents", jobID, len(documents))
	return &Result{
		JobID:              jobID,
		RepoURL:            repoURL,
		FilesProcessed:     len(files),
		DocumentsGenerated: len(documents),
		Documents:          documents,
		ResultURL:          resultURL,
	}, nil
}
