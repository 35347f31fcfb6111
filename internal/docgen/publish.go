package docgen

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yourusername/auto-readme/internal/config"
)

const artifactContentType = "text/html"

// Publisher はコンパイル済みドキュメントをオブジェクトストレージへ公開します。
type Publisher interface {
	Publish(ctx context.Context, jobID, content string) (string, error)
}

// S3Publisher は S3 互換ストレージへアップロードし、署名付きURLを返す Publisher 実装です。
type S3Publisher struct {
	client    *minio.Client
	bucket    string
	urlExpiry time.Duration
}

// NewS3Publisher は接続設定を検証して S3Publisher を作成します。
// バケットや認証情報の欠落は設定エラーであり、リトライ対象ではありません。
func NewS3Publisher(cfg *config.Config) (*S3Publisher, error) {
	if strings.TrimSpace(cfg.S3Bucket) == "" {
		return nil, newError(CodeConfigError, "S3_BUCKET が設定されていません。", nil)
	}
	if strings.TrimSpace(cfg.S3AccessKey) == "" || strings.TrimSpace(cfg.S3SecretKey) == "" {
		return nil, newError(CodeConfigError, "ストレージの認証情報が設定されていません。", nil)
	}

	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, newError(CodeConfigError, "ストレージクライアントの初期化に失敗しました。", err)
	}

	expiry := time.Duration(cfg.ResultURLExpiryHours) * time.Hour
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}

	return &S3Publisher{
		client:    client,
		bucket:    cfg.S3Bucket,
		urlExpiry: expiry,
	}, nil
}

// Publish は {jobID}/index.html のキーでアップロードし、取得用URLを返します。
// 同一ジョブの再公開は同じオブジェクトを上書きします。
func (p *S3Publisher) Publish(ctx context.Context, jobID, content string) (string, error) {
	key := objectKey(jobID)
	data := []byte(content)

	// まず public-read ACL 付きで試み、ACL拒否のバケットではACLなしで再試行する
	opts := minio.PutObjectOptions{
		ContentType:  artifactContentType,
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	}
	_, err := p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(data), int64(len(data)), opts)
	if err != nil {
		if !isACLRejection(err) {
			return "", newError(CodeUploadFailed, "ドキュメントのアップロードに失敗しました。", err)
		}
		opts.UserMetadata = nil
		_, err = p.client.PutObject(ctx, p.bucket, key, bytes.NewReader(data), int64(len(data)), opts)
		if err != nil {
			return "", newError(CodeUploadFailed, "ドキュメントのアップロードに失敗しました。", err)
		}
	}

	u, err := p.client.PresignedGetObject(ctx, p.bucket, key, p.urlExpiry, nil)
	if err != nil {
		return "", newError(CodeUploadFailed, "取得用URLの生成に失敗しました。", err)
	}
	return u.String(), nil
}

func isACLRejection(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "InvalidRequest", "AccessControlListNotSupported", "NotSupported":
		return true
	}
	return false
}

func objectKey(jobID string) string {
	return fmt.Sprintf("%s/index.html", jobID)
}
