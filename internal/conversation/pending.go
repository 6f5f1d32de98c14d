package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pedidozap/internal/domain/inventory"
	"github.com/hugohenrick/pedidozap/internal/domain/order"
)

// pendingTTL é o tempo de vida de um diálogo pendente; respostas depois disso
// são tratadas como entrada comum, não como resolução do diálogo
const pendingTTL = 5 * time.Minute

// PendingConfirmation é um diálogo de esclarecimento aguardando resposta do chat.
// Guarda o snapshot do catálogo usado na resolução original para que a resposta
// seja casada contra o mesmo conjunto de itens apresentado ao usuário.
type PendingConfirmation struct {
	ID                string
	OriginalItem      order.CandidateItem
	BusinessID        string
	ChatID            string
	InventorySnapshot []inventory.Item
	CreatedAt         time.Time
}

// PendingItemDetails é um diálogo de cadastro de item novo em andamento
type PendingItemDetails struct {
	ID           string
	NewItemName  string
	OriginalItem order.CandidateItem
	BusinessID   string
	ChatID       string
	CreatedAt    time.Time
}

// PendingStore mantém em memória os diálogos pendentes de todos os chats do
// processo. Protegido por mutex; a expiração é verificada de forma preguiçosa
// na emissão e na consulta, com uma varredura periódica opcional.
type PendingStore struct {
	mu            sync.Mutex
	confirmations map[string]*PendingConfirmation
	details       map[string]*PendingItemDetails
}

// NewPendingStore cria um novo armazenamento de diálogos pendentes
func NewPendingStore() *PendingStore {
	return &PendingStore{
		confirmations: make(map[string]*PendingConfirmation),
		details:       make(map[string]*PendingItemDetails),
	}
}

// PutConfirmation registra um novo diálogo de esclarecimento e retorna seu ID.
// Remove antes qualquer diálogo pendente do mesmo chat para o mesmo item,
// mantendo no máximo um por par (chat, item original).
func (s *PendingStore) PutConfirmation(businessID, chatID string, item order.CandidateItem, snapshot []inventory.Item) *PendingConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	for id, pc := range s.confirmations {
		if pc.ChatID == chatID && pc.OriginalItem.Name == item.Name {
			delete(s.confirmations, id)
		}
	}

	pc := &PendingConfirmation{
		ID:                uuid.New().String(),
		OriginalItem:      item,
		BusinessID:        businessID,
		ChatID:            chatID,
		InventorySnapshot: snapshot,
		CreatedAt:         time.Now(),
	}
	s.confirmations[pc.ID] = pc
	return pc
}

// FindConfirmationByChat retorna um diálogo de esclarecimento pendente do chat.
// Havendo mais de um, devolve o primeiro encontrado na ordem de iteração do
// mapa — comportamento herdado; ver nota em DESIGN.md sobre casamento por
// mensagem citada.
func (s *PendingStore) FindConfirmationByChat(chatID string) *PendingConfirmation {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pc := range s.confirmations {
		if pc.ChatID != chatID {
			continue
		}
		if time.Since(pc.CreatedAt) >= pendingTTL {
			delete(s.confirmations, pc.ID)
			continue
		}
		return pc
	}
	return nil
}

// DeleteConfirmation remove um diálogo de esclarecimento
func (s *PendingStore) DeleteConfirmation(id string) {
	s.mu.Lock()
	delete(s.confirmations, id)
	s.mu.Unlock()
}

// PutDetails registra um novo diálogo de cadastro de item e retorna seu ID
func (s *PendingStore) PutDetails(businessID, chatID, newItemName string, item order.CandidateItem) *PendingItemDetails {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepLocked()
	for id, pd := range s.details {
		if pd.ChatID == chatID && pd.OriginalItem.Name == item.Name {
			delete(s.details, id)
		}
	}

	pd := &PendingItemDetails{
		ID:           uuid.New().String(),
		NewItemName:  newItemName,
		OriginalItem: item,
		BusinessID:   businessID,
		ChatID:       chatID,
		CreatedAt:    time.Now(),
	}
	s.details[pd.ID] = pd
	return pd
}

// FindDetailsByChat retorna um diálogo de cadastro pendente do chat
func (s *PendingStore) FindDetailsByChat(chatID string) *PendingItemDetails {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pd := range s.details {
		if pd.ChatID != chatID {
			continue
		}
		if time.Since(pd.CreatedAt) >= pendingTTL {
			delete(s.details, pd.ID)
			continue
		}
		return pd
	}
	return nil
}

// DeleteDetails remove um diálogo de cadastro
func (s *PendingStore) DeleteDetails(id string) {
	s.mu.Lock()
	delete(s.details, id)
	s.mu.Unlock()
}

// Sweep remove todos os diálogos expirados e retorna quantos foram removidos
func (s *PendingStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *PendingStore) sweepLocked() int {
	removed := 0
	for id, pc := range s.confirmations {
		if time.Since(pc.CreatedAt) >= pendingTTL {
			delete(s.confirmations, id)
			removed++
		}
	}
	for id, pd := range s.details {
		if time.Since(pd.CreatedAt) >= pendingTTL {
			delete(s.details, id)
			removed++
		}
	}
	return removed
}

// StartSweeper inicia a varredura periódica de diálogos expirados até o
// contexto ser cancelado
func (s *PendingStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}
