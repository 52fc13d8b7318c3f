package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{
		cost: bcrypt.DefaultCost,
	}
}

func (h *Hasher) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Check runs the full bcrypt comparison regardless of outcome, so timing
// does not distinguish near-misses from garbage.
func (h *Hasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func (h *Hasher) SetCost(cost int) {
	h.cost = cost
}
