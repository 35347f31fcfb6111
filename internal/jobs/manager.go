package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"github.com/yourusername/auto-readme/internal/config"
	"github.com/yourusername/auto-readme/internal/docgen"
)

const (
	taskTypeDocs = "docs:generate"
	queueDocs    = "docs"
)

// Manager はジョブの投入と状態管理を担います。
type Manager struct {
	cfg     *config.Config
	client  *asynq.Client
	server  *asynq.Server
	mux     *asynq.ServeMux
	store   *Store
	service *docgen.Service
	logger  *log.Logger
}

// TaskPayload はドキュメント生成ジョブのペイロードです。
// ブローカーとの契約は (jobId, repoUrl) のみです。
type TaskPayload struct {
	JobID   string `json:"jobId"`
	RepoURL string `json:"repoUrl"`
}

// NewManager は Manager を初期化します。
func NewManager(cfg *config.Config, service *docgen.Service, store *Store, logger *log.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if service == nil {
		return nil, errors.New("service is nil")
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	opt, err := asynq.ParseRedisURI(cfg.QueueRedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := asynq.NewClient(opt)
	server := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: cfg.WorkerConcurrency,
			Queues: map[string]int{
				queueDocs: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	manager := &Manager{
		cfg:     cfg,
		client:  client,
		server:  server,
		mux:     mux,
		store:   store,
		service: service,
		logger:  logger,
	}
	mux.HandleFunc(taskTypeDocs, manager.handleDocsTask)
	return manager, nil
}

// StartWorkers は Asynq サーバーをバックグラウンドで起動します。
func (m *Manager) StartWorkers() {
	go func() {
		if err := m.server.Run(m.mux); err != nil && err != asynq.ErrServerClosed {
			if m.logger != nil {
				m.logger.Printf("asynq server stopped with error: %v", err)
			} else {
				log.Printf("asynq server stopped with error: %v", err)
			}
		}
	}()
}

// Shutdown はサーバーとクライアントを閉じます。
func (m *Manager) Shutdown(ctx context.Context) error {
	m.server.Shutdown()
	m.client.Close()
	return nil
}

// Enqueue はジョブをキューに投入します。
// 投入前に queued 状態のレコードを作成するため、直後のステータス照会でも
// ジョブは既知として扱われます。
func (m *Manager) Enqueue(ctx context.Context, payload *TaskPayload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("payload is nil")
	}
	if payload.JobID == "" {
		return "", fmt.Errorf("payload.JobID is required")
	}

	record := &Record{
		JobID:   payload.JobID,
		RepoURL: payload.RepoURL,
		Status:  StatusQueued,
		Progress: ProgressInfo{
			Stage: "queued",
		},
	}
	if err := m.store.Upsert(ctx, record); err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	task := asynq.NewTask(taskTypeDocs, body, asynq.Queue(queueDocs))
	info, err := m.client.EnqueueContext(ctx, task, asynq.TaskID(payload.JobID), asynq.MaxRetry(0))
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

// GetRecord はジョブ情報を取得します。
func (m *Manager) GetRecord(ctx context.Context, jobID string) (*Record, error) {
	return m.store.Get(ctx, jobID)
}

// handleDocsTask は1ジョブ分のパイプラインを駆動します。
// パイプラインの失敗はレコードへ terminal な failed として記録した上で
// nil を返し、ブローカーによる再実行は行いません。
func (m *Manager) handleDocsTask(ctx context.Context, task *asynq.Task) error {
	var payload TaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}
	if payload.JobID == "" {
		return fmt.Errorf("missing jobId in payload")
	}

	// API経由でないジョブはレコードが無い可能性があるため Upsert で揃える
	if err := m.store.Upsert(ctx, &Record{
		JobID:   payload.JobID,
		RepoURL: payload.RepoURL,
		Status:  StatusProcessing,
		Progress: ProgressInfo{
			Stage: "starting",
		},
	}); err != nil {
		return err
	}

	result, err := m.service.RunJob(ctx, payload.JobID, payload.RepoURL, m.progressReporter(payload.JobID))
	if err != nil {
		m.logger.Printf("job %s failed: %v", payload.JobID, err)
		return m.failJobWithError(ctx, payload.JobID, err)
	}
	return m.finishJob(ctx, payload.JobID, result)
}

// progressReporter は進捗イベントをストアへ書き込むコールバックを返します。
// 保存の失敗はログに残すだけで、パイプラインを止めることはありません。
func (m *Manager) progressReporter(jobID string) docgen.ProgressReporter {
	return func(stage docgen.Stage, message string, counters docgen.Counters) {
		err := m.store.UpdateProgress(context.Background(), jobID, ProgressInfo{
			Stage:              string(stage),
			Message:            message,
			FilesFound:         counters.FilesFound,
			FilesProcessed:     counters.FilesProcessed,
			DocumentsGenerated: counters.DocumentsGenerated,
		})
		if err != nil && m.logger != nil {
			m.logger.Printf("failed to update progress job=%s: %v", jobID, err)
		}
	}
}

func (m *Manager) finishJob(ctx context.Context, jobID string, result *docgen.Result) error {
	if result == nil {
		return fmt.Errorf("result is nil")
	}
	return m.store.MarkDone(ctx, jobID, result)
}

func (m *Manager) failJob(ctx context.Context, jobID, code, message string) error {
	return m.store.MarkFailed(ctx, jobID, &ErrorInfo{
		Code:    code,
		Message: message,
	})
}

func (m *Manager) failJobWithError(ctx context.Context, jobID string, err error) error {
	var domainErr *docgen.Error
	if errors.As(err, &domainErr) {
		return m.failJob(ctx, jobID, domainErr.Code, domainErr.Error())
	}
	return m.failJob(ctx, jobID, "INTERNAL_ERROR", err.Error())
}
