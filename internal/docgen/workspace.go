package docgen

import (
	"fmt"
	"os"
	"sync"
)

// workspace はジョブごとのクローン先スクラッチディレクトリを表します。
type workspace struct {
	jobID string
	dir   string

	cleanupOnce sync.Once
	cleanupErr  error
}

// newWorkspace はジョブID入りの一意な一時ディレクトリを作成します。
func newWorkspace(jobID string) (*workspace, error) {
	dir, err := os.MkdirTemp("", fmt.Sprintf("autoreadme_%s_", jobID))
	if err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &workspace{jobID: jobID, dir: dir}, nil
}

// Cleanup はスクラッチディレクトリを削除します。二重削除は抑止されます。
func (w *workspace) Cleanup() error {
	if w == nil {
		return nil
	}
	w.cleanupOnce.Do(func() {
		w.cleanupErr = os.RemoveAll(w.dir)
	})
	return w.cleanupErr
}
