package docgen

import (
	"context"

	git "github.com/go-git/go-git/v5"
)

// Cloner はリモートリポジトリをローカルディレクトリへ取得します。
type Cloner interface {
	Clone(ctx context.Context, dir, repoURL string) error
}

// GitCloner は go-git によるフルクローンを行う Cloner 実装です。
type GitCloner struct{}

func (GitCloner) Clone(ctx context.Context, dir, repoURL string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL: repoURL,
	})
	return err
}

// materialize はスクラッチディレクトリを確保してリポジトリをクローンします。
// クローンに失敗した場合、ディレクトリは削除されてからエラーが返ります。
func (s *Service) materialize(ctx context.Context, jobID, repoURL string) (*workspace, error) {
	ws, err := newWorkspace(jobID)
	if err != nil {
		return nil, newError(CodeInternalError, "作業ディレクトリの作成に失敗しました。", err)
	}
	if err := s.cloner.Clone(ctx, ws.dir, repoURL); err != nil {
		_ = ws.Cleanup()
		return nil, newError(CodeCloneFailed, "リポジトリのクローンに失敗しました。", err)
	}
	return ws, nil
}
