package common

import "strings"

// ChatRequest POST /chat 的請求內容，message 為 prompt 的別名
type ChatRequest struct {
	Prompt  string `json:"prompt"`
	Message string `json:"message"`
}

// Text 回傳請求中的原始查詢文字，prompt 優先
func (r ChatRequest) Text() string {
	if strings.TrimSpace(r.Prompt) != "" {
		return r.Prompt
	}
	return r.Message
}

// ChatResponse POST /chat 的成功回應
type ChatResponse struct {
	Reply string `json:"reply"`
}

// UnexpectedErrorReply 非預期錯誤時統一回給使用者的訊息
const UnexpectedErrorReply = "⚠️ Oops — something went wrong. Please try again later."
