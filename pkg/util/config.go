package util

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

// SetConfigDefaults. defaults used when ./data/config is missing a key.
func SetConfigDefaults() {
	viper.SetDefault("GRAPH_FILE", "./data/jakarta_network_processed.graph")
	viper.SetDefault("API_PORT", 5000)
	viper.SetDefault("WEBSOCKET_PORT", 5001)
	viper.SetDefault("WEBSOCKET_PROXY_PORT", 5002)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("SEARCH_TIMEOUT", "0s")
	viper.SetDefault("SNAP_RADIUS_KM", 0.5)
	// 0 keeps the road profile bounds of the heuristics
	viper.SetDefault("MAX_SPEED_KMH", 0)
	viper.SetDefault("MIN_POLLUTION_MULTIPLIER", 0)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("HTTP_SERVER_READ_TIMEOUT", 10*time.Second)
	viper.SetDefault("HTTP_SERVER_WRITE_TIMEOUT", 10*time.Second)
	viper.SetDefault("HTTP_SERVER_IDLE_TIMEOUT", 60*time.Second)
	viper.SetDefault("HTTP_SERVER_READ_HEADER_TIMEOUT", 5*time.Second)
}
