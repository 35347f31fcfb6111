package docgen

import "fmt"

// Error はドキュメント生成処理のドメインエラーです。
// Code はジョブレコードおよびAPIレスポンスにそのまま載ります。
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// エラーコード一覧。
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeCloneFailed   = "CLONE_FAILED"
	CodeConfigError   = "CONFIG_ERROR"
	CodeCompileFailed = "COMPILE_FAILED"
	CodeUploadFailed  = "UPLOAD_FAILED"
	CodeInternalError = "INTERNAL_ERROR"
)
