package matchlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashTextNormalizesBeforeHashing(t *testing.T) {
	base := HashText("2 bolos de cenoura")

	assert.Equal(t, base, HashText("  2 Bolos de Cenoura  "))
	assert.Equal(t, base, HashText("2 BOLOS DE CENOURA"))
	assert.NotEqual(t, base, HashText("3 bolos de cenoura"))
	assert.Len(t, base, 64)
}

func TestSuccessRate(t *testing.T) {
	tests := []struct {
		name  string
		stats Stats
		want  float64
	}{
		{"sem histórico", Stats{}, 0},
		{"todos confirmados", Stats{Total: 4, Confirmed: 4}, 1},
		{"parcial", Stats{Total: 10, Confirmed: 7}, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.stats.SuccessRate(), 1e-9)
		})
	}
}

func TestCacheEntryExpired(t *testing.T) {
	live := CacheEntry{ExpiresAt: time.Now().Add(time.Hour)}
	stale := CacheEntry{ExpiresAt: time.Now().Add(-time.Minute)}

	assert.False(t, live.Expired())
	assert.True(t, stale.Expired())
}
