package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"AssetSentinel/internal/marketdata"
	"AssetSentinel/internal/model"
	"AssetSentinel/internal/recorder"
	"AssetSentinel/internal/report"
	"AssetSentinel/internal/risk"
)

func (s *Server) getPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"holdings":    s.store.Holdings(),
		"total_value": s.store.TotalValue(),
	})
}

func (s *Server) putPortfolio(c *gin.Context) {
	var holdings []model.AssetHolding
	if err := c.ShouldBindJSON(&holdings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed portfolio: " + err.Error()})
		return
	}
	if err := s.store.Replace(holdings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"holdings":    s.store.Holdings(),
		"total_value": s.store.TotalValue(),
	})
}

func (s *Server) getPresets(c *gin.Context) {
	out := make([]gin.H, 0, len(risk.Presets))
	for _, name := range risk.PresetNames() {
		p, _ := risk.Preset(name)
		out = append(out, gin.H{"name": name, "parameters": p})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}

func (s *Server) getMarket(c *gin.Context) {
	snap, err := s.market.Snapshot(false)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"snapshot":         snap,
		"context":          marketdata.Context(snap),
		"expected_returns": marketdata.ExpectedReturns(snap, 1.0),
	})
}

func (s *Server) refreshMarket(c *gin.Context) {
	snap, err := s.market.Refresh()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if err := s.rec.RecordMarketRefresh(&recorder.MarketRefreshEvent{
		Source:    snap.Source,
		SoraRate:  snap.Rates["sora_rate"],
		FetchedAt: snap.FetchedAt,
	}); err != nil {
		log.Warn().Err(err).Msg("record market refresh")
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": snap})
}

// stressRequest selects either a named preset or custom slider values.
type stressRequest struct {
	Scenario   string                  `json:"scenario"`
	Parameters *model.StressParameters `json:"parameters"`
}

func (r *stressRequest) resolve() (string, model.StressParameters, error) {
	if r.Scenario != "" {
		p, ok := risk.Preset(r.Scenario)
		if !ok {
			return "", model.StressParameters{}, errors.New("unknown scenario " + strconv.Quote(r.Scenario))
		}
		return r.Scenario, p, nil
	}
	if r.Parameters == nil {
		return "", model.StressParameters{}, errors.New("either scenario or parameters is required")
	}
	return "Custom", clampParameters(*r.Parameters), nil
}

func (s *Server) runStress(c *gin.Context) {
	var req stressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	name, params, err := req.resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics, err := risk.Evaluate(s.store.Holdings(), params, s.assume)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, risk.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.recordEvaluation(name, metrics)
	c.JSON(http.StatusOK, gin.H{
		"scenario": name,
		"metrics":  metrics,
		"insights": risk.Insights(metrics, s.assume),
	})
}

func (s *Server) compareScenarios(c *gin.Context) {
	// Optional body narrows the preset list; empty body compares all.
	var req struct {
		Scenarios []string `json:"scenarios"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
			return
		}
	}
	names := req.Scenarios
	if len(names) == 0 {
		names = risk.PresetNames()
	}

	scenarios := make(map[string]model.StressParameters, len(names))
	for _, name := range names {
		p, ok := risk.Preset(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown scenario " + strconv.Quote(name)})
			return
		}
		scenarios[name] = p
	}

	results, err := risk.CompareScenarios(s.store.Holdings(), scenarios, s.assume)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) getHistory(c *gin.Context) {
	limit := 20
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	records, err := s.rec.RecentEvaluations(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []recorder.EvaluationRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"evaluations": records})
}

func (s *Server) exportReport(c *gin.Context) {
	var req stressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	name, params, err := req.resolve()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metrics, err := risk.Evaluate(s.store.Holdings(), params, s.assume)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, risk.ErrInvalidInput) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	pdf, err := s.gen.Generate(metrics, risk.Insights(metrics, s.assume), s.assume, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.recordEvaluation(name, metrics)
	filename := report.Filename(s.orgPrefix, now)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *Server) recordEvaluation(scenario string, m *model.StressMetrics) {
	err := s.rec.RecordEvaluation(&recorder.EvaluationRecord{
		Scenario:      scenario,
		Parameters:    m.Parameters,
		OriginalValue: m.OriginalValue.String(),
		StressedValue: m.StressedValue.String(),
		MaxDrawdown:   m.MaxDrawdown,
		Coverage:      m.ReserveCoverageRatio,
		LiquidityDays: m.TimeToLiquidityDays,
		VolBreach:     m.VolatilityBreach,
		LiqBreach:     m.LiquidityBreach,
	})
	if err != nil {
		log.Warn().Err(err).Str("scenario", scenario).Msg("record evaluation")
	}
}
