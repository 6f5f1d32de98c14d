package order

import (
	"testing"

	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, name string, price float64) *inventory.Item {
	return &inventory.Item{ID: id, Name: name, Price: price, Type: inventory.ItemTypeProduct}
}

func matched(name string, qty int, it *inventory.Item, conf float64) MatchCandidate {
	return MatchCandidate{
		OriginalItem: CandidateItem{Name: name, Quantity: qty},
		MatchedItem:  it,
		Confidence:   conf,
	}
}

func escalated(name string, qty int) MatchCandidate {
	return MatchCandidate{
		OriginalItem:       CandidateItem{Name: name, Quantity: qty},
		NeedsClarification: true,
	}
}

func TestDeriveStatus(t *testing.T) {
	bolo := item("i1", "Bolo", 30)

	tests := []struct {
		name  string
		items []MatchCandidate
		want  Status
	}{
		{
			name:  "sem itens",
			items: nil,
			want:  StatusNeedsClarification,
		},
		{
			name:  "todos confiantes",
			items: []MatchCandidate{matched("bolo", 1, bolo, 0.95), matched("suco", 2, item("i2", "Suco", 8), 0.9)},
			want:  StatusCompleted,
		},
		{
			name:  "confiança exatamente no limiar não conclui",
			items: []MatchCandidate{matched("bolo", 1, bolo, 0.8)},
			want:  StatusNeedsConfirmation,
		},
		{
			name:  "mistura de casado e escalado",
			items: []MatchCandidate{matched("bolo", 1, bolo, 0.95), escalated("docinho", 1)},
			want:  StatusNeedsConfirmation,
		},
		{
			name:  "todos escalados",
			items: []MatchCandidate{escalated("docinho", 1), escalated("salgado", 2)},
			want:  StatusNeedsClarification,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.items))
		})
	}
}

func TestAggregateConfidence(t *testing.T) {
	assert.Equal(t, 0.0, AggregateConfidence(nil))

	items := []MatchCandidate{
		matched("bolo", 1, item("i1", "Bolo", 30), 0.9),
		escalated("docinho", 1),
	}
	assert.InDelta(t, 0.45, AggregateConfidence(items), 1e-9)
}

func TestTotalRevenueIgnoresUnmatchedItems(t *testing.T) {
	items := []MatchCandidate{
		matched("bolo", 2, item("i1", "Bolo", 30), 0.95),
		matched("suco", 3, item("i2", "Suco", 8), 0.92),
		escalated("docinho", 10),
	}
	assert.InDelta(t, 84.0, TotalRevenue(items), 1e-9)
}

func TestMergeMatchReplacesByOriginalName(t *testing.T) {
	o := NewOrder("biz-1", "chat-1", "1 bolo, 1 docinho")
	o.MatchedItems = []MatchCandidate{
		matched("bolo", 1, item("i1", "Bolo", 30), 0.95),
		escalated("docinho", 1),
	}
	o.Recompute()
	require.Equal(t, StatusNeedsConfirmation, o.Status)

	o.MergeMatch(matched("docinho", 1, item("i3", "Docinho Colorido", 2.5), 0.95))

	require.Len(t, o.MatchedItems, 2)
	assert.Equal(t, "i3", o.MatchedItems[1].MatchedItem.ID)
	assert.Equal(t, StatusCompleted, o.Status)
	assert.InDelta(t, 32.5, o.TotalRevenue, 1e-9)
	assert.InDelta(t, 0.95, o.Confidence, 1e-9)
}

func TestMergeMatchAppendsUnknownName(t *testing.T) {
	o := NewOrder("biz-1", "chat-1", "")
	o.MergeMatch(matched("torta", 1, item("i1", "Torta", 40), 0.95))

	require.Len(t, o.MatchedItems, 1)
	assert.Equal(t, StatusCompleted, o.Status)
	assert.InDelta(t, 40.0, o.TotalRevenue, 1e-9)
}

func TestUnresolvedItems(t *testing.T) {
	o := NewOrder("biz-1", "chat-1", "")
	o.MatchedItems = []MatchCandidate{
		matched("bolo", 1, item("i1", "Bolo", 30), 0.95),
		escalated("docinho", 1),
		escalated("salgado", 2),
	}

	unresolved := o.UnresolvedItems()
	require.Len(t, unresolved, 2)
	assert.Equal(t, "docinho", unresolved[0].OriginalItem.Name)
	assert.Equal(t, "salgado", unresolved[1].OriginalItem.Name)
}
