package crypto

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator hands out record identifiers. Implementations must be safe for
// concurrent use and must not rely on shared counters.
type IDGenerator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate uuid: %w", err)
	}
	return id.String(), nil
}
