package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"astock/config"
	"astock/display"
	"astock/positions"
	"astock/prompt"
	"astock/trading"
)

// Handler API处理器
type Handler struct {
	assembler *prompt.Assembler
	formatter *display.Formatter
	startedAt time.Time
}

// NewHandler 创建处理器
func NewHandler(a *prompt.Assembler, f *display.Formatter) *Handler {
	if f == nil {
		f = display.NewFormatter(nil)
	}
	return &Handler{assembler: a, formatter: f, startedAt: time.Now()}
}

// symbolsParam 未传 symbols 时返回 nil（默认标的池），传空值时返回空标的池
func symbolsParam(c *gin.Context) []string {
	raw, ok := c.GetQuery("symbols")
	if !ok {
		return nil
	}
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// GetPrompt 组装系统提示词；参数只取自请求，date 缺省为北京时间今日
//
//	GET /api/prompt?date=2024-06-03&signature=agent-1&symbols=600519.SH,600036.SH&format=text|messages
func (h *Handler) GetPrompt(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	signature := strings.TrimSpace(c.Query("signature"))
	if signature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": config.ErrMissingSignature.Error()})
		return
	}
	if err := positions.ValidateSignature(signature); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if date == "" {
		date = trading.Today()
	}
	if _, err := trading.ParseDate(date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	symbols := symbolsParam(c)
	ctx := c.Request.Context()

	switch format := c.DefaultQuery("format", "text"); format {
	case "text":
		text, err := h.assembler.Build(ctx, date, signature, symbols)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"code": 0,
			"data": gin.H{
				"date":      date,
				"signature": signature,
				"market":    h.assembler.Market(),
				"prompt":    text,
			},
		})
	case "messages":
		msgs, err := h.assembler.BuildMessages(ctx, date, signature, symbols)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"code": 0,
			"data": gin.H{
				"date":      date,
				"signature": signature,
				"market":    h.assembler.Market(),
				"messages":  msgs,
			},
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "format 只支持 text 或 messages",
			"format": format,
		})
	}
}

// fail 把组装错误映射为状态码；数据源错误视为上游故障
func (h *Handler) fail(c *gin.Context, err error) {
	var missing *prompt.MissingFieldsError
	switch {
	case errors.Is(err, config.ErrMissingSignature), errors.Is(err, positions.ErrInvalidSignature):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &missing):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error(), "fields": missing.Fields})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// GetSymbols 当前标的池及名称、涨跌幅限制
func (h *Handler) GetSymbols(c *gin.Context) {
	m := h.assembler.Market()
	ls := h.formatter.Listings(c.Request.Context(), m, h.assembler.Universe(symbolsParam(c)))
	c.JSON(http.StatusOK, gin.H{
		"code":   0,
		"market": m,
		"count":  len(ls),
		"data":   ls,
	})
}

// GetStatus 获取服务状态
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"data": gin.H{
			"market":          h.assembler.Market(),
			"today":           trading.Today(),
			"is_trading_time": trading.IsStockTradingTime(),
			"uptime":          time.Since(h.startedAt).Truncate(time.Second).String(),
		},
	})
}
