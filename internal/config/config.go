// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
type Config struct {
	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// ジョブ/キュー設定
	QueueRedisURL     string // Asynq用Redis接続URL（ジョブ状態の保存先も兼ねる）
	JobExpireMinutes  int    // ジョブレコードの保持期間（分）
	WorkerConcurrency int    // Asynqワーカーの同時実行数

	// ドキュメント生成設定
	SummarizeWorkers int // 1ジョブ内で並列実行するファイル要約数
	MaxFileChars     int // 要約対象ファイルの最大文字数（超過分は切り詰め）

	// LLM設定
	GeminiAPIKey string // Gemini APIキー
	LLMModel     string // 使用するモデル名

	// オブジェクトストレージ設定（生成物の公開先）
	S3Endpoint           string // S3互換エンドポイント
	S3Region             string // リージョン
	S3Bucket             string // バケット名
	S3AccessKey          string // アクセスキー
	S3SecretKey          string // シークレットキー
	S3UseSSL             bool   // TLS接続を使用するか
	ResultURLExpiryHours int    // 署名付きURLの有効期間（時間）
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	// .env.local ファイルを読み込む（存在しない場合はスキップ）
	loadEnvFile()

	config := &Config{
		// サーバー設定
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),

		// ジョブ/キュー設定
		QueueRedisURL:     getEnv("QUEUE_REDIS_URL", "redis://127.0.0.1:6379/0"),
		JobExpireMinutes:  getEnvAsInt("JOB_EXPIRE_MINUTES", 1440), // 24時間
		WorkerConcurrency: getEnvAsInt("WORKER_CONCURRENCY", 4),

		// ドキュメント生成設定
		SummarizeWorkers: getEnvAsInt("SUMMARIZE_WORKERS", 10),
		MaxFileChars:     getEnvAsInt("MAX_FILE_CHARS", 10000),

		// LLM設定
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		LLMModel:     getEnv("LLM_MODEL", "gemini-2.0-flash"),

		// オブジェクトストレージ設定
		S3Endpoint:           getEnv("S3_ENDPOINT", "s3.amazonaws.com"),
		S3Region:             getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:             getEnv("S3_BUCKET", ""),
		S3AccessKey:          getEnv("AWS_ACCESS_KEY_ID", ""),
		S3SecretKey:          getEnv("AWS_SECRET_ACCESS_KEY", ""),
		S3UseSSL:             getEnvAsBool("S3_USE_SSL", true),
		ResultURLExpiryHours: getEnvAsInt("RESULT_URL_EXPIRY_HOURS", 168), // 7日
	}

	// 必須設定のバリデーション
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
func (c *Config) Validate() error {
	// ローカル開発ではストレージ/LLM設定は任意
	// 本番環境では厳格にチェックする想定
	if c.GinMode == "release" {
		if c.QueueRedisURL == "" {
			return fmt.Errorf("QUEUE_REDIS_URL is required in release mode")
		}
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required in release mode")
		}
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required in release mode")
		}
		if c.S3AccessKey == "" || c.S3SecretKey == "" {
			return fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are required in release mode")
		}
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します。
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
