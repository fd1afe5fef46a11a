package database

import (
	"github.com/geoexplorer/backend/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs schema migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.VerificationCode{},
		&model.RefreshToken{},
		&model.Level{},
		&model.UserLevelProgress{},
		&model.DailyTrivia{},
		&model.Mistake{},
		&model.GeoFeature{},
		&model.ARLandform{},
	)
}

// Seed inserts the default level ladder when the levels table is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Level{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	levels := []model.Level{
		{Name: "地貌入门", Description: strPtr("认识基本地形：山地、平原、盆地"), OrderIndex: 1, UnlockRequirement: 0},
		{Name: "河流与湖泊", Description: strPtr("世界主要河流与湖泊"), OrderIndex: 2, UnlockRequirement: 3},
		{Name: "气候分区", Description: strPtr("气候类型及其分布规律"), OrderIndex: 3, UnlockRequirement: 6},
		{Name: "板块与地震", Description: strPtr("板块构造与地质活动"), OrderIndex: 4, UnlockRequirement: 9},
	}

	return db.Create(&levels).Error
}

func strPtr(s string) *string {
	return &s
}
