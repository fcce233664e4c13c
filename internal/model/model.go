// Package model 定义数据模型
package model

import (
	"gorm.io/gorm"
)

// AutoMigrate 按模型名迁移数据表
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "User":
		return db.AutoMigrate(User{})
	case "Profile":
		return db.AutoMigrate(Profile{})
	case "Link":
		return db.AutoMigrate(Link{})
	}
	return nil
}

// AutoMigrateAll 迁移全部数据表
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(User{}, Profile{}, Link{})
}
