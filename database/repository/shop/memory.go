package shopRepo

import (
	"context"
	"sync"

	"bookline/models"
)

// InMemoryShopRepo implements Repository for tests and local development.
type InMemoryShopRepo struct {
	mu   sync.RWMutex
	rows map[string]models.Shop
}

func NewInMemoryShopRepo(shops ...models.Shop) *InMemoryShopRepo {
	repo := &InMemoryShopRepo{rows: make(map[string]models.Shop)}
	for _, s := range shops {
		repo.rows[s.ID] = s
	}
	return repo
}

func (repo *InMemoryShopRepo) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	shop, ok := repo.rows[shopID]
	if !ok {
		return nil, ErrShopNotFound
	}
	out := shop
	return &out, nil
}

func (repo *InMemoryShopRepo) UpsertShop(ctx context.Context, shop *models.Shop) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.rows[shop.ID] = *shop
	return nil
}

func (repo *InMemoryShopRepo) ListShops(ctx context.Context) ([]models.Shop, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	out := make([]models.Shop, 0, len(repo.rows))
	for _, s := range repo.rows {
		out = append(out, s)
	}
	return out, nil
}
