package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	BackendBaseURL  string
	AssetBaseURL    string
	ServerPort      int
	GalleryPageSize int
	RedisAddr       string
	RedisPassword   string
	CatalogCacheTTL time.Duration
	NotificationTTL time.Duration
	CloseDelay      time.Duration
	HTTPTimeout     time.Duration
	AllowedOrigins  []string
}

func Load() (*Settings, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}

	if !viper.IsSet("BACKEND_BASE_URL") {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if !viper.IsSet("SERVER_PORT") {
		return nil, fmt.Errorf("SERVER_PORT is required")
	}

	viper.SetDefault("GALLERY_PAGE_SIZE", 8)
	viper.SetDefault("CATALOG_CACHE_TTL", 300)
	viper.SetDefault("NOTIFICATION_TTL", 5)
	viper.SetDefault("CLOSE_DELAY_MS", 300)
	viper.SetDefault("HTTP_TIMEOUT", 10)
	viper.SetDefault("ALLOWED_ORIGINS", "*")

	assetBase := viper.GetString("ASSET_BASE_URL")
	if assetBase == "" {
		assetBase = viper.GetString("BACKEND_BASE_URL")
	}

	return &Settings{
		BackendBaseURL:  strings.TrimRight(viper.GetString("BACKEND_BASE_URL"), "/"),
		AssetBaseURL:    strings.TrimRight(assetBase, "/"),
		ServerPort:      viper.GetInt("SERVER_PORT"),
		GalleryPageSize: viper.GetInt("GALLERY_PAGE_SIZE"),
		RedisAddr:       viper.GetString("REDIS_ADDR"),
		RedisPassword:   viper.GetString("REDIS_PASSWORD"),
		CatalogCacheTTL: time.Duration(viper.GetInt("CATALOG_CACHE_TTL")) * time.Second,
		NotificationTTL: time.Duration(viper.GetInt("NOTIFICATION_TTL")) * time.Second,
		CloseDelay:      time.Duration(viper.GetInt("CLOSE_DELAY_MS")) * time.Millisecond,
		HTTPTimeout:     time.Duration(viper.GetInt("HTTP_TIMEOUT")) * time.Second,
		AllowedOrigins:  strings.Split(viper.GetString("ALLOWED_ORIGINS"), ","),
	}, nil
}
