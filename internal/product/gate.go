// Package product is the ledger's view of the external product catalog.
package product

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-inventory-service/internal/model"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnavailable     = errors.New("product service unavailable")
)

// Gate confirms that a product exists. Implementations return ErrProductNotFound
// for a definite miss and wrap ErrUnavailable for anything else.
type Gate interface {
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
}
