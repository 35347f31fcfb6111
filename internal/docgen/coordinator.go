package docgen

import (
	"context"
	"fmt"
	"sync"
)

// progressEveryN は何件の要約完了ごとに進捗イベントを出すかを決めます。
const progressEveryN = 5

// summarizeAll はファイル一覧を固定サイズのワーカープールへ分配し、
// 完了順に SummaryDocument を収集します。空ファイル等で nil になった結果は
// 出力に含まれません。個々のワーカーの失敗は記録して読み飛ばすだけで、
// 兄弟ワーカーにもジョブ全体にも影響しません。
func (s *Service) summarizeAll(ctx context.Context, files []string, localRoot string, reporter ProgressReporter) []SummaryDocument {
	if len(files) == 0 {
		return []SummaryDocument{}
	}

	workers := s.summarizeWorkers
	if workers <= 0 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	fileCh := make(chan string)
	resultCh := make(chan *SummaryDocument)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for relPath := range fileCh {
				resultCh <- s.summarizeSafely(ctx, relPath, localRoot)
			}
		}()
	}

	go func() {
		defer close(fileCh)
		for _, relPath := range files {
			fileCh <- relPath
		}
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	documents := make([]SummaryDocument, 0, len(files))
	completed := 0
	for doc := range resultCh {
		completed++
		if doc != nil {
			documents = append(documents, *doc)
		}
		if completed%progressEveryN == 0 {
			reportProgress(reporter, StageAnalyzing,
				fmt.Sprintf("Processed %d/%d files...", completed, len(files)),
				Counters{FilesProcessed: completed})
		}
	}

	return documents
}

// summarizeSafely はワーカー内の panic を回収し、当該ファイルをスキップ扱いにします。
func (s *Service) summarizeSafely(ctx context.Context, relPath, localRoot string) (doc *SummaryDocument) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Printf("summarize panic for %s: %v", relPath, r)
			doc = nil
		}
	}()
	return s.summarizeFile(ctx, relPath, localRoot)
}
