package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/yourusername/auto-readme/internal/config"
	"github.com/yourusername/auto-readme/internal/docgen"
	"github.com/yourusername/auto-readme/internal/jobs"
)

func setupJobs(ctx context.Context, cfg *config.Config) (*jobs.Manager, error) {
	opt, err := redis.ParseURL(cfg.QueueRedisURL)
	if err != nil {
		return nil, err
	}
	redisClient := redis.NewClient(opt)

	ttlMinutes := cfg.JobExpireMinutes
	if ttlMinutes <= 0 {
		ttlMinutes = 1440
	}
	store := jobs.NewStore(redisClient, time.Duration(ttlMinutes)*time.Minute)

	llm, err := docgen.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	publisher, err := docgen.NewS3Publisher(cfg)
	if err != nil {
		return nil, err
	}

	service := docgen.NewService(cfg, docgen.GitCloner{}, llm, publisher, log.Default())
	return jobs.NewManager(cfg, service, store, log.Default())
}

func setupRoutes(router *gin.Engine, manager *jobs.Manager) {
	router.GET("/health", handleHealth)

	api := router.Group("/api")
	{
		api.POST("/submit", submitHandler(manager))
		api.GET("/status/:id", statusHandler(manager))
	}
}

type submitRequest struct {
	GithubURL string `json:"github_url" binding:"required"`
}

// submitHandler は POST /api/submit のハンドラーを返します。
// URLの到達性はここでは検証せず、クローン段階で遅延検証されます。
func submitHandler(manager *jobs.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "github_url を指定してください。",
			})
			return
		}

		jobID := uuid.NewString()
		if _, err := manager.Enqueue(c.Request.Context(), &jobs.TaskPayload{
			JobID:   jobID,
			RepoURL: strings.TrimSpace(req.GithubURL),
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "ジョブの投入に失敗しました。",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"job_id":  jobID,
			"status":  jobs.StatusQueued,
			"message": "Job has been queued for processing",
		})
	}
}

// statusHandler は GET /api/status/:id のハンドラーを返します。
func statusHandler(manager *jobs.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		jobID := c.Param("id")
		if strings.TrimSpace(jobID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":    "INVALID_INPUT",
				"message": "jobId を指定してください。",
			})
			return
		}

		record, err := manager.GetRecord(c.Request.Context(), jobID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "ジョブ情報の取得に失敗しました。",
			})
			return
		}

		c.JSON(http.StatusOK, statusPayload(jobID, record))
	}
}

// statusPayload はジョブレコードをクライアント向けのスナップショットへ変換します。
// 未知のジョブIDは not-found ではなく queued として応答します。ブローカーに
// まだ登録されていない投入直後のジョブを誤って「存在しない」と見せないための
// 意図的な設計で、失効済みレコードも同様に queued に見える点は既知のトレードオフです。
func statusPayload(jobID string, record *jobs.Record) gin.H {
	if record == nil {
		return gin.H{
			"job_id": jobID,
			"status": jobs.StatusQueued,
		}
	}

	payload := gin.H{
		"job_id": record.JobID,
		"status": record.Status,
	}
	if record.Progress.Stage != "" {
		payload["stage"] = record.Progress.Stage
	}
	if record.Progress.FilesFound > 0 {
		payload["files_found"] = record.Progress.FilesFound
	}
	if record.Progress.FilesProcessed > 0 {
		payload["files_processed"] = record.Progress.FilesProcessed
	}
	if record.Progress.DocumentsGenerated > 0 {
		payload["documents_generated"] = record.Progress.DocumentsGenerated
	}

	switch record.Status {
	case jobs.StatusCompleted:
		payload["result"] = record.Result
		payload["result_url"] = record.ResultURL
	case jobs.StatusFailed:
		if record.Error != nil {
			payload["error"] = record.Error.Message
		} else {
			payload["error"] = "Job failed"
		}
	}

	return payload
}
