package matching

import (
	"context"
	"sync"
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/matchlog"
	"github.com/hugohenrick/pedidozap/pkg/logger"
)

const (
	// thresholdsTTL é o tempo de vida do cache de limiares por business
	thresholdsTTL = 10 * time.Minute

	// learningWindow é a janela de histórico considerada no cálculo da taxa de sucesso
	learningWindow = 30 * 24 * time.Hour

	// defaultSuccessRate é a taxa assumida para businesses sem histórico
	defaultSuccessRate = 0.8
)

// Thresholds são os limiares adaptativos de aceitação de um business.
// Invariante: AutoAccept >= AIRequired >= HumanRequired.
type Thresholds struct {
	AutoAccept    float64 `json:"auto_accept"`
	AIRequired    float64 `json:"ai_required"`
	HumanRequired float64 `json:"human_required"`
}

// thresholdsForRate seleciona os limiares a partir da taxa de sucesso.
// Os cinco patamares são valores de política de negócio; não alterar.
func thresholdsForRate(rate float64) Thresholds {
	switch {
	case rate > 0.9:
		return Thresholds{AutoAccept: 0.80, AIRequired: 0.60, HumanRequired: 0.40}
	case rate > 0.8:
		return Thresholds{AutoAccept: 0.85, AIRequired: 0.65, HumanRequired: 0.45}
	case rate > 0.7:
		return Thresholds{AutoAccept: 0.90, AIRequired: 0.85, HumanRequired: 0.60}
	case rate > 0.6:
		return Thresholds{AutoAccept: 0.90, AIRequired: 0.70, HumanRequired: 0.50}
	default:
		return Thresholds{AutoAccept: 0.95, AIRequired: 0.80, HumanRequired: 0.60}
	}
}

type cachedThresholds struct {
	thresholds Thresholds
	computedAt time.Time
}

// ConfidenceService calcula e mantém em cache os limiares adaptativos por
// business a partir do log de aprendizado de matching
type ConfidenceService struct {
	mu     sync.Mutex
	cache  map[string]cachedThresholds
	repo   matchlog.Repository
	logger logger.Logger
}

// NewConfidenceService cria um novo serviço de confiança adaptativa
func NewConfidenceService(repo matchlog.Repository, log logger.Logger) *ConfidenceService {
	return &ConfidenceService{
		cache:  make(map[string]cachedThresholds),
		repo:   repo,
		logger: log,
	}
}

// Thresholds retorna os limiares do business, recalculando quando o cache expira.
// Erros de leitura do log não interrompem o pipeline: cai na taxa padrão.
func (s *ConfidenceService) Thresholds(ctx context.Context, businessID string) Thresholds {
	s.mu.Lock()
	cached, ok := s.cache[businessID]
	s.mu.Unlock()

	if ok && time.Since(cached.computedAt) < thresholdsTTL {
		return cached.thresholds
	}

	rate := defaultSuccessRate
	stats, err := s.repo.SuccessStats(ctx, businessID, time.Now().Add(-learningWindow))
	if err != nil {
		s.logger.Warn("failed to load match stats, using default rate", "business_id", businessID, "error", err)
	} else if stats.Total > 0 {
		rate = stats.SuccessRate()
	}

	thresholds := thresholdsForRate(rate)

	s.mu.Lock()
	s.cache[businessID] = cachedThresholds{thresholds: thresholds, computedAt: time.Now()}
	s.mu.Unlock()

	s.logger.Debug("adaptive thresholds computed",
		"business_id", businessID,
		"success_rate", rate,
		"auto_accept", thresholds.AutoAccept)

	return thresholds
}

// RecordMatchResult registra um resultado de matching no log de aprendizado e
// invalida o cache de limiares do business. Erros de persistência são
// registrados e engolidos; nunca abortam o pipeline.
func (s *ConfidenceService) RecordMatchResult(ctx context.Context, businessID, originalText, matchedItemID, matchedItemType string, userConfirmed bool, confidence float64) {
	record := matchlog.NewRecord(businessID, originalText, matchedItemID, matchedItemType, userConfirmed, confidence)
	if err := s.repo.Append(ctx, record); err != nil {
		s.logger.Error("failed to append match learning record", "business_id", businessID, "error", err)
	}

	s.mu.Lock()
	delete(s.cache, businessID)
	s.mu.Unlock()
}

// Invalidate descarta os limiares em cache de um business
func (s *ConfidenceService) Invalidate(businessID string) {
	s.mu.Lock()
	delete(s.cache, businessID)
	s.mu.Unlock()
}
