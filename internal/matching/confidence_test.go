package matching

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hugohenrick/pedidozap/internal/domain/matchlog"
	"github.com/hugohenrick/pedidozap/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchLogRepo struct {
	stats      matchlog.Stats
	statsErr   error
	statsCalls int
	appended   []*matchlog.Record
	appendErr  error
}

func (f *fakeMatchLogRepo) Append(_ context.Context, r *matchlog.Record) error {
	f.appended = append(f.appended, r)
	return f.appendErr
}

func (f *fakeMatchLogRepo) SuccessStats(_ context.Context, _ string, _ time.Time) (matchlog.Stats, error) {
	f.statsCalls++
	if f.statsErr != nil {
		return matchlog.Stats{}, f.statsErr
	}
	return f.stats, nil
}

func TestThresholdsForRate(t *testing.T) {
	tests := []struct {
		rate float64
		want Thresholds
	}{
		{0.95, Thresholds{AutoAccept: 0.80, AIRequired: 0.60, HumanRequired: 0.40}},
		{0.85, Thresholds{AutoAccept: 0.85, AIRequired: 0.65, HumanRequired: 0.45}},
		{0.75, Thresholds{AutoAccept: 0.90, AIRequired: 0.85, HumanRequired: 0.60}},
		{0.65, Thresholds{AutoAccept: 0.90, AIRequired: 0.70, HumanRequired: 0.50}},
		{0.60, Thresholds{AutoAccept: 0.95, AIRequired: 0.80, HumanRequired: 0.60}},
		{0.10, Thresholds{AutoAccept: 0.95, AIRequired: 0.80, HumanRequired: 0.60}},
	}

	for _, tt := range tests {
		got := thresholdsForRate(tt.rate)
		assert.Equal(t, tt.want, got, "rate %.2f", tt.rate)
		assert.GreaterOrEqual(t, got.AutoAccept, got.AIRequired)
		assert.GreaterOrEqual(t, got.AIRequired, got.HumanRequired)
	}
}

func TestThresholdsAutoAcceptNeverDropsOnWorseHistory(t *testing.T) {
	// Quanto pior a taxa de sucesso, mais exigente o limiar de aceite
	rates := []float64{0.95, 0.85, 0.75, 0.65, 0.55}
	prev := 0.0
	for _, rate := range rates {
		got := thresholdsForRate(rate)
		assert.GreaterOrEqual(t, got.AutoAccept, prev, "rate %.2f", rate)
		prev = got.AutoAccept
	}
}

func TestConfidenceServiceUsesDefaultRateWithoutHistory(t *testing.T) {
	repo := &fakeMatchLogRepo{stats: matchlog.Stats{}}
	svc := NewConfidenceService(repo, logger.Nop{})

	got := svc.Thresholds(context.Background(), "biz-1")

	// Taxa padrão 0.8 cai no patamar rate > 0.7
	assert.Equal(t, thresholdsForRate(0.8), got)
}

func TestConfidenceServiceUsesDefaultRateOnStatsError(t *testing.T) {
	repo := &fakeMatchLogRepo{statsErr: errors.New("db down")}
	svc := NewConfidenceService(repo, logger.Nop{})

	got := svc.Thresholds(context.Background(), "biz-1")

	assert.Equal(t, thresholdsForRate(0.8), got)
}

func TestConfidenceServiceComputesRateFromStats(t *testing.T) {
	repo := &fakeMatchLogRepo{stats: matchlog.Stats{Total: 10, Confirmed: 10}}
	svc := NewConfidenceService(repo, logger.Nop{})

	got := svc.Thresholds(context.Background(), "biz-1")

	assert.Equal(t, thresholdsForRate(1.0), got)
}

func TestConfidenceServiceCachesThresholds(t *testing.T) {
	repo := &fakeMatchLogRepo{stats: matchlog.Stats{Total: 10, Confirmed: 9}}
	svc := NewConfidenceService(repo, logger.Nop{})

	svc.Thresholds(context.Background(), "biz-1")
	svc.Thresholds(context.Background(), "biz-1")

	assert.Equal(t, 1, repo.statsCalls)
}

func TestRecordMatchResultAppendsAndInvalidates(t *testing.T) {
	repo := &fakeMatchLogRepo{stats: matchlog.Stats{Total: 10, Confirmed: 9}}
	svc := NewConfidenceService(repo, logger.Nop{})

	svc.Thresholds(context.Background(), "biz-1")
	svc.RecordMatchResult(context.Background(), "biz-1", "2 bolos", "item-1", "product", true, 0.95)

	require.Len(t, repo.appended, 1)
	assert.Equal(t, "2 bolos", repo.appended[0].OriginalText)
	assert.True(t, repo.appended[0].UserConfirmed)

	// Cache invalidado: próxima consulta recalcula
	svc.Thresholds(context.Background(), "biz-1")
	assert.Equal(t, 2, repo.statsCalls)
}

func TestRecordMatchResultSwallowsPersistenceError(t *testing.T) {
	repo := &fakeMatchLogRepo{appendErr: errors.New("db down")}
	svc := NewConfidenceService(repo, logger.Nop{})

	assert.NotPanics(t, func() {
		svc.RecordMatchResult(context.Background(), "biz-1", "2 bolos", "item-1", "product", true, 0.95)
	})
}
