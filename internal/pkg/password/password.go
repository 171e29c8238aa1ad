package password

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultCost is the default bcrypt cost
	DefaultCost = 10
	// MinLength is the minimum accepted plaintext length
	MinLength = 6
)

// Hasher hashes and verifies passwords with bcrypt.
// At most `concurrency` bcrypt computations run at once.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher creates a hasher. cost <= 0 uses DefaultCost,
// concurrency <= 0 uses the number of CPUs.
func NewHasher(cost, concurrency int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash hashes a password using bcrypt with a fresh salt
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify compares a password with a hash.
// A cancelled context or malformed hash reports false.
func (h *Hasher) Verify(ctx context.Context, password, hash string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost returns the configured bcrypt cost
func (h *Hasher) Cost() int {
	return h.cost
}

// ValidatePassword checks if password meets requirements
func ValidatePassword(password string) bool {
	return len(password) >= MinLength
}
