package data

import (
	"time"

	"gorm.io/gorm"

	"github.com/shareclass/accounts/internal/server/models"
)

func CreateLinkedIdentity(db *gorm.DB, identity *models.LinkedIdentity) error {
	identity.LastUpdate = time.Now().UTC()
	return add(db, identity)
}

func ListLinkedIdentities(db *gorm.DB, selectors ...SelectorFunc) ([]models.LinkedIdentity, error) {
	return list[models.LinkedIdentity](db, selectors...)
}

func DeleteLinkedIdentities(db *gorm.DB, selectors ...SelectorFunc) error {
	return deleteAll[models.LinkedIdentity](db, selectors...)
}
