package recorder

// NoopRecorder is a no-op implementation used when SQLite is not available.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordEvaluation(_ *EvaluationRecord) error          { return nil }
func (n *NoopRecorder) RecordMarketRefresh(_ *MarketRefreshEvent) error     { return nil }
func (n *NoopRecorder) RecentEvaluations(_ int) ([]EvaluationRecord, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                        { return nil }
