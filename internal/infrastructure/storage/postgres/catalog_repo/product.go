package catalog_repo

import (
	"uretimtrack/internal/domain/catalogs/product"
	"uretimtrack/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

// ProductRepo is the PostgreSQL repository for products.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	cols := postgres.ExtractDBColumns[product.Product]()
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			productTable,
			cols,
			func() *product.Product { return &product.Product{} },
		),
	}
}

var _ product.Repository = (*ProductRepo)(nil)
