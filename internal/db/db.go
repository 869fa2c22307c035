package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"swingconnect/internal/models"
	"swingconnect/pkg/log"

	"go.uber.org/zap"
)

// Open 连接 postgres 并自动迁移全部表结构
// TranslateError 开启后唯一索引冲突会转成 gorm.ErrDuplicatedKey，
// 存储层依赖这一点识别重复记录
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Report{},
		&models.Notification{},
		&models.Studio{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	seedStudios(gdb)
	return gdb, nil
}

// seedStudios 空库时预置几条目录数据，方便冷启动
func seedStudios(gdb *gorm.DB) {
	var count int64
	if err := gdb.Model(&models.Studio{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	studios := []models.Studio{
		{Name: "Swing Time Studio", City: "Shanghai", Address: "静安区南京西路 1266 号", DanceStyles: "lindy hop,charleston"},
		{Name: "Hop & Roll", City: "Beijing", Address: "朝阳区三里屯路 19 号", DanceStyles: "lindy hop,balboa"},
		{Name: "Rhythm Junction", City: "Shenzhen", Address: "南山区科技园", DanceStyles: "lindy hop,blues,solo jazz"},
	}
	if err := gdb.Create(&studios).Error; err != nil {
		log.L.Warn("seed studios failed", zap.Error(err))
	}
}

// OpenRedis 连接 redis，地址为空或连不上时返回 nil（热榜降级）
func OpenRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.L.Warn("redis unavailable, hot board disabled", zap.String("addr", addr), zap.Error(err))
		return nil
	}
	return client
}
