package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/0xsj/overwatch-mastermind/internal/port/outbound/store"
)

const poolKey = "mastermind:pool:digits"

// allocateScript removes the first ARGV[1] digits only if that many are present.
// A nil reply means the pool was too small and nothing was removed.
var allocateScript = redis.NewScript(`
local n = tonumber(ARGV[1])
if redis.call('LLEN', KEYS[1]) < n then
	return false
end
local digits = redis.call('LRANGE', KEYS[1], 0, n - 1)
redis.call('LTRIM', KEYS[1], n, -1)
return digits
`)

// supplyPool implements store.SupplyPool on a Redis list.
type supplyPool struct {
	client *redis.Client
	key    string
}

// NewSupplyPool creates a new SupplyPool.
func NewSupplyPool(client *redis.Client) store.SupplyPool {
	return &supplyPool{
		client: client,
		key:    poolKey,
	}
}

func (p *supplyPool) Allocate(ctx context.Context, n int) ([]int, error) {
	if n < 1 {
		return nil, fmt.Errorf("allocation size must be positive, got %d", n)
	}

	raw, err := allocateScript.Run(ctx, p.client, []string{p.key}, n).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrInsufficientSupply
		}
		return nil, fmt.Errorf("failed to allocate from pool: %w", err)
	}

	digits := make([]int, len(raw))
	for i, s := range raw {
		d, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("pool holds a non-numeric entry %q: %w", s, err)
		}
		digits[i] = d
	}
	return digits, nil
}

func (p *supplyPool) Replenish(ctx context.Context, digits []int) error {
	if len(digits) == 0 {
		return nil
	}

	values := make([]interface{}, len(digits))
	for i, d := range digits {
		values[i] = d
	}

	if err := p.client.RPush(ctx, p.key, values...).Err(); err != nil {
		return fmt.Errorf("failed to append to pool: %w", err)
	}
	return nil
}

func (p *supplyPool) Size(ctx context.Context) (int64, error) {
	size, err := p.client.LLen(ctx, p.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read pool size: %w", err)
	}
	return size, nil
}
