package internal

import (
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/service"
	"github.com/OptimisticTrousers/word-reminder-sub001/internal/store"
	"github.com/OptimisticTrousers/word-reminder-sub001/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB        *gorm.DB
	Store     *store.Store
	Passwords *security.PasswordHasher
	Importer  *service.Importer
	Composer  *service.Composer
	// Largest accepted upload in bytes
	MaxUploadSize int64
}
