package migration

import (
	"github.com/uknf/communication-platform-backend/internal/domain"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the platform schema and seeds the supervised
// entity registry if it is empty. User accounts are provisioned by the
// identity service and are never seeded here.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.SupervisedEntity{},
		&domain.Message{},
		&domain.Announcement{},
		&domain.AnnouncementRead{},
	); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.SupervisedEntity{}).Count(&count)
	if count == 0 {
		return seedEntities(db)
	}

	return nil
}

// seedEntities inserts a starter entity registry for local development.
// Production deployments import the registry from the UKNF master file.
func seedEntities(db *gorm.DB) error {
	entities := []domain.SupervisedEntity{
		{ID: 1, Name: "Bank Przykładowy S.A.", UknfCode: "BP0001", LEI: "259400EXAMPLE0000001", NIP: "5250000001"},
		{ID: 2, Name: "Towarzystwo Funduszy Inwestycyjnych Wzorcowe S.A.", UknfCode: "TFI0002", LEI: "259400EXAMPLE0000002", NIP: "5250000002"},
		{ID: 3, Name: "Zakład Ubezpieczeń Modelowy S.A.", UknfCode: "ZU0003", LEI: "259400EXAMPLE0000003", NIP: "5250000003"},
	}
	return db.Create(&entities).Error
}
