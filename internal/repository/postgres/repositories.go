package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/bargenix/bargaining-api/internal/repository"
)

// NewRepositories wires all postgres repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Merchant:          NewMerchantRepository(db, logger),
		ShopifyCredential: NewShopifyCredentialRepository(db, logger),
		BargainingConfig:  NewBargainingConfigRepository(db, logger),
		BargainRequest:    NewBargainRequestRepository(db, logger),
	}
}
