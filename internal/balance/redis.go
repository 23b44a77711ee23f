package balance

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"ticketledger/internal/ticketing/ports"
	id "ticketledger/pkg/domain"
)

const keyPrefix = "balance:"

// debitScript performs check-and-deduct server-side so the balance can never
// go negative under concurrent debits.
var debitScript = redis.NewScript(`
local balance = tonumber(redis.call("GET", KEYS[1]) or "0")
local amount = tonumber(ARGV[1])
if balance < amount then
	return -1
end
return redis.call("DECRBY", KEYS[1], amount)
`)

// Redis backs the balance ledger with a Redis instance shared across
// processes.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func key(principal id.Principal) string {
	return keyPrefix + principal.String()
}

func (l *Redis) Balance(ctx context.Context, principal id.Principal) (int64, error) {
	value, err := l.client.Get(ctx, key(principal)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return value, nil
}

func (l *Redis) Debit(ctx context.Context, principal id.Principal, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("debit amount cannot be negative")
	}
	result, err := debitScript.Run(ctx, l.client, []string{key(principal)}, amount).Int64()
	if err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if result < 0 {
		return ports.ErrInsufficientFunds
	}
	return nil
}

func (l *Redis) Credit(ctx context.Context, principal id.Principal, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("credit amount cannot be negative")
	}
	if err := l.client.IncrBy(ctx, key(principal), amount).Err(); err != nil {
		return fmt.Errorf("credit balance: %w", err)
	}
	return nil
}
