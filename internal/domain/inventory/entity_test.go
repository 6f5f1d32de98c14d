package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemValidation(t *testing.T) {
	tests := []struct {
		name     string
		itemName string
		price    float64
		itemType ItemType
		wantErr  error
	}{
		{"válido", "Bolo de Cenoura", 30, ItemTypeProduct, nil},
		{"nome vazio", "   ", 30, ItemTypeProduct, ErrEmptyName},
		{"preço negativo", "Bolo", -1, ItemTypeProduct, ErrInvalidPrice},
		{"tipo desconhecido", "Bolo", 30, ItemType("combo"), ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem("biz-1", tt.itemName, tt.price, tt.itemType, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, item.ID)
			assert.Equal(t, "Bolo de Cenoura", item.Name)
		})
	}
}

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		raw  string
		want ItemType
	}{
		{"product", ItemTypeProduct},
		{"Produto", ItemTypeProduct},
		{"serviço", ItemTypeOther},
		{"servicos", ItemTypeOther},
		{"OTHER", ItemTypeOther},
		{"", ItemTypeProduct},
		{"qualquer coisa", ItemTypeProduct},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeType(tt.raw))
		})
	}
}
