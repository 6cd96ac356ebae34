package shopRepo

import (
	"context"
	"errors"

	"bookline/models"
)

var ErrShopNotFound = errors.New("shop not found")

// Repository resolves tenant shop profiles. Every incoming chat turn loads the
// shop first; implementations are expected to make that lookup cheap.
type Repository interface {
	GetShop(ctx context.Context, shopID string) (*models.Shop, error)
	UpsertShop(ctx context.Context, shop *models.Shop) error
	ListShops(ctx context.Context) ([]models.Shop, error)
}
