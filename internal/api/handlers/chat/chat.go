package chat

import (
	"context"
	"errors"
	"net/http"

	"recipe-assistant/internal/core/resolver"
	"recipe-assistant/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Resolver 解析聊天查詢
type Resolver interface {
	Resolve(ctx context.Context, raw string) (*resolver.Result, error)
}

// Handler 聊天處理器
type Handler struct {
	resolver Resolver
}

// NewHandler 創建聊天處理器
func NewHandler(r Resolver) *Handler {
	return &Handler{resolver: r}
}

// Chat 處理 POST /chat；prompt 缺失或空白回 400，其他錯誤回 200 與道歉訊息
func (h *Handler) Chat(c *gin.Context) {
	requestID := requestid.Get(c)

	var req common.ChatRequest
	if err := common.DecodeJSON(c.Request.Body, &req); err != nil {
		ce := common.NewMalformedRequestError(err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ce = common.ErrBodyTooLarge
		}
		common.LogDebug("請求格式無效", zap.String("request_id", requestID), zap.String("code", ce.Code), zap.Error(err))
		c.JSON(ce.Status, ce.Response())
		return
	}

	ctx := common.WithRequestID(c.Request.Context(), requestID)
	result, err := h.resolver.Resolve(ctx, req.Text())
	if err != nil {
		if ce := common.AsClientError(err); ce != nil {
			c.JSON(ce.Status, ce.Response())
			return
		}

		common.LogError("解析失敗",
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusOK, common.ChatResponse{Reply: common.UnexpectedErrorReply})
		return
	}

	common.LogInfo("回覆完成",
		zap.String("request_id", requestID),
		zap.String("tier", string(result.Tier)),
	)
	c.JSON(http.StatusOK, common.ChatResponse{Reply: result.Reply})
}
