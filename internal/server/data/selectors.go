package data

import (
	"time"

	"gorm.io/gorm"

	"github.com/shareclass/accounts/uid"
)

type SelectorFunc func(db *gorm.DB) *gorm.DB

func ByID(id uid.ID) SelectorFunc {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func ByUsername(username string) SelectorFunc {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("username = ?", username)
	}
}

func ByAccountID(accountID uid.ID) SelectorFunc {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("account_id = ?", accountID)
	}
}

func ByURLToken(token string) SelectorFunc {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("url_token = ?", token)
	}
}

func ByToken(token string) SelectorFunc {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("token = ?", token)
	}
}

func ByExpiredBefore(now time.Time) SelectorFunc {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("expires_at < ?", now)
	}
}
