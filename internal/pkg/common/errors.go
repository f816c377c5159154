package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Error string `json:"error"`
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 讓 errors.Is / errors.As 能取得原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Response 對外只輸出 Message，原始錯誤留在日誌
func (e *CustomError) Response() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// AsClientError 將可回報給用戶端的錯誤轉為 CustomError；其他錯誤回傳 nil
func AsClientError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return NewError(ErrCodeInvalidRequest, ve.message, http.StatusBadRequest, err)
	}
	return nil
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodePayloadTooLarge = "PAYLOAD_TOO_LARGE" // 413
)

// MissingPromptMessage 請求沒有可用 prompt 時回傳的訊息
const MissingPromptMessage = "Missing prompt"

// 預定義錯誤
var (
	// ErrMissingPrompt 請求沒有 prompt / message 或內容為空白
	ErrMissingPrompt = NewValidationError(MissingPromptMessage)

	// ErrBodyTooLarge 請求體超過上限
	ErrBodyTooLarge = NewError(ErrCodePayloadTooLarge, "Request body too large", http.StatusRequestEntityTooLarge, nil)
)

// NewMalformedRequestError 請求體無法解析時的錯誤，對外與缺少 prompt 相同
func NewMalformedRequestError(err error) *CustomError {
	return NewError(ErrCodeInvalidRequest, MissingPromptMessage, http.StatusBadRequest, err)
}
