// Package webhook exposes the inbound trade endpoint.
package webhook

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rustyeddy/fxbot/engine"
	"github.com/rustyeddy/fxbot/market"
	"go.uber.org/zap"
)

// TradePlacer is the slice of the engine the handlers need.
type TradePlacer interface {
	PlaceTrade(ctx context.Context, req engine.TradeRequest) (bool, error)
}

// tradePayload is the externally supplied, already-decided trade. Pointers
// distinguish missing required fields from zero values.
type tradePayload struct {
	Action       string   `json:"action"`
	StopLossPips *float64 `json:"stop_loss_pips"`
	EntryPrice   *float64 `json:"entry_price"`
	RiskReward   float64  `json:"risk_reward"`
	Instrument   string   `json:"instrument"`
}

type Server struct {
	trades TradePlacer
	log    *zap.Logger
}

// NewRouter builds the HTTP routes. Handlers answer 200 with a status
// field; a bad payload is an "error" response, never a dropped connection.
func NewRouter(trades TradePlacer, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{trades: trades, log: log}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/webhook", s.handleWebhook)
	r.POST("/test", s.handleTest)
	return r
}

func (s *Server) handleWebhook(c *gin.Context) {
	var payload tradePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.log.Warn("bad webhook payload", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}

	action, err := market.ParseSignal(payload.Action)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if payload.StopLossPips == nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "stop_loss_pips is required"})
		return
	}
	if payload.EntryPrice == nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": "entry_price is required"})
		return
	}

	instrument := payload.Instrument
	if instrument == "" {
		instrument = market.DefaultInstrument
	}

	s.log.Info("webhook trade",
		zap.String("action", action.String()),
		zap.String("instrument", instrument),
		zap.Float64("stop_loss_pips", *payload.StopLossPips),
		zap.Float64("entry_price", *payload.EntryPrice))

	ok, err := s.trades.PlaceTrade(c.Request.Context(), engine.TradeRequest{
		Action:      action,
		StopPips:    *payload.StopLossPips,
		EntryPrice:  *payload.EntryPrice,
		RewardRatio: payload.RiskReward,
		Instrument:  instrument,
	})
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "fail"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// handleTest echoes the payload back, a connectivity check for webhook
// providers.
func (s *Server) handleTest(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "received": payload})
}
