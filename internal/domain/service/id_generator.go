package service

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator hands out receipt identifiers at payment completion time.
type IDGenerator interface {
	NewReceiptID() string
}

type UUIDGenerator struct {
	Prefix string
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{Prefix: "RCPT-"}
}

func (g *UUIDGenerator) NewReceiptID() string {
	return g.Prefix + strings.ToUpper(uuid.NewString())
}
