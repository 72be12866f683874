package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cgdmohamed/drznmobile-sub000/internal/repository"
)

// Manager hands out one Store per cart ID, restoring persisted state the
// first time a cart is touched. Stores are owned by the manager for the
// lifetime of the process; consumers never construct them directly.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store

	repo      repository.CartRepository
	publisher EventPublisher
	discounts DiscountPolicy
	logger    *slog.Logger
}

// NewManager creates a store manager.
func NewManager(repo repository.CartRepository, publisher EventPublisher, discounts DiscountPolicy, logger *slog.Logger) *Manager {
	return &Manager{
		stores:    make(map[string]*Store),
		repo:      repo,
		publisher: publisher,
		discounts: discounts,
		logger:    logger,
	}
}

// Get returns the store for the given cart ID, creating and restoring it on
// first access.
func (m *Manager) Get(ctx context.Context, cartID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[cartID]; ok {
		return s
	}
	s := New(cartID, m.repo, m.publisher, m.discounts, m.logger)
	// Restore before publishing the store so no consumer can observe the
	// pre-restore empty cart.
	s.Restore(ctx)
	m.stores[cartID] = s
	return s
}
