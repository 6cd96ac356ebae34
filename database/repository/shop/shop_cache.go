package shopRepo

import (
	"context"
	"encoding/json"
	"time"

	"bookline/models"
	"bookline/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const shopCacheTTL = 10 * time.Minute

// CachedShopRepo wraps a Repository with a Redis read-through cache. Shop
// profiles change rarely but are loaded on every chat turn, so cache misses
// fall through to the backing store and populate the cache; cache errors are
// logged and never fail a lookup.
type CachedShopRepo struct {
	backing Repository
	client  *redis.Client
}

func NewCachedShopRepo(backing Repository, client *redis.Client) *CachedShopRepo {
	return &CachedShopRepo{backing: backing, client: client}
}

func cacheKey(shopID string) string {
	return "shop:" + shopID
}

func (repo *CachedShopRepo) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	logger := utils.GetLogger()

	data, err := repo.client.Get(ctx, cacheKey(shopID)).Result()
	if err == nil {
		var shop models.Shop
		if err := json.Unmarshal([]byte(data), &shop); err == nil {
			return &shop, nil
		}
		logger.Warn("Failed to unmarshal cached shop", zap.String("shopID", shopID))
	} else if err != redis.Nil {
		logger.Warn("Shop cache read failed", zap.String("shopID", shopID), zap.Error(err))
	}

	shop, err := repo.backing.GetShop(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(shop); err == nil {
		if err := repo.client.Set(ctx, cacheKey(shopID), payload, shopCacheTTL).Err(); err != nil {
			logger.Warn("Shop cache write failed", zap.String("shopID", shopID), zap.Error(err))
		}
	}
	return shop, nil
}

func (repo *CachedShopRepo) UpsertShop(ctx context.Context, shop *models.Shop) error {
	if err := repo.backing.UpsertShop(ctx, shop); err != nil {
		return err
	}
	if err := repo.client.Del(ctx, cacheKey(shop.ID)).Err(); err != nil {
		utils.GetLogger().Warn("Shop cache invalidation failed", zap.String("shopID", shop.ID), zap.Error(err))
	}
	return nil
}

func (repo *CachedShopRepo) ListShops(ctx context.Context) ([]models.Shop, error) {
	return repo.backing.ListShops(ctx)
}
