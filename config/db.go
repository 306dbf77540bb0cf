package config

import (
	"fmt"
	"sync/atomic"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB открывает соединение с Postgres и сохраняет его в глобальной переменной DB.
func InitDB() error {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		App.DBHost, App.DBPort, App.DBUser, App.DBPassword, App.DBName)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	return err
}

var testDBSeq atomic.Int64

// InitTestDB открывает отдельную in-memory базу SQLite для тестов.
func InitTestDB() error {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	return err
}
