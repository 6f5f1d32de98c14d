package matchlog

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record é uma linha do log de aprendizado de matching (append-only).
// Alimenta o cálculo da taxa de sucesso por business.
type Record struct {
	ID              string    `json:"id"`
	BusinessID      string    `json:"business_id"`
	OriginalText    string    `json:"original_text"`
	MatchedItemID   string    `json:"matched_item_id"`
	MatchedItemType string    `json:"matched_item_type"`
	UserConfirmed   bool      `json:"user_confirmed"`
	ConfidenceScore float64   `json:"confidence_score"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewRecord cria um novo registro do log de aprendizado
func NewRecord(businessID, originalText, matchedItemID, matchedItemType string, userConfirmed bool, confidence float64) *Record {
	return &Record{
		ID:              uuid.New().String(),
		BusinessID:      businessID,
		OriginalText:    originalText,
		MatchedItemID:   matchedItemID,
		MatchedItemType: matchedItemType,
		UserConfirmed:   userConfirmed,
		ConfidenceScore: confidence,
		CreatedAt:       time.Now(),
	}
}

// Stats agrega os resultados de matching de um período
type Stats struct {
	Total     int
	Confirmed int
}

// SuccessRate retorna a fração de matches confirmados; zero quando não há histórico
func (s Stats) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Confirmed) / float64(s.Total)
}

// CacheEntry é uma entrada do cache de resultados de matching aceitos,
// chaveada pelo hash do texto normalizado
type CacheEntry struct {
	BusinessID      string    `json:"business_id"`
	TextHash        string    `json:"text_hash"`
	MatchedItemID   string    `json:"matched_item_id"`
	MatchedItemType string    `json:"matched_item_type"`
	ConfidenceScore float64   `json:"confidence_score"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Expired indica se a entrada já passou do seu TTL
func (e *CacheEntry) Expired() bool {
	return time.Now().After(e.ExpiresAt)
}

// HashText normaliza (minúsculas, sem espaços nas bordas) e aplica SHA-256 ao texto
func HashText(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
