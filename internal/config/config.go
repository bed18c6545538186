package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	DBURL         string `mapstructure:"DB_URL"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	MQTTBroker    string `mapstructure:"MQTT_BROKER"`
	MQTTClientID  string `mapstructure:"MQTT_CLIENT_ID"`
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	MDNSLocalName string `mapstructure:"MDNS_LOCAL_NAME"`
	ParkingSpots  int    `mapstructure:"PARKING_SPOTS"`
}

// LoadConfig reads configuration from file, .env, or env vars
func LoadConfig() (*Config, error) {
	// .env is optional, plain env vars win either way
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	viper.SetDefault("HTTP_ADDR", ":5069")
	viper.SetDefault("MQTT_CLIENT_ID", "smartoffice-backend")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PARKING_SPOTS", 20)

	cfg := &Config{
		DBURL:         viper.GetString("DB_URL"),
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		MQTTBroker:    viper.GetString("MQTT_BROKER"),
		MQTTClientID:  viper.GetString("MQTT_CLIENT_ID"),
		HTTPAddr:      viper.GetString("HTTP_ADDR"),
		LogLevel:      viper.GetString("LOG_LEVEL"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		MDNSLocalName: viper.GetString("MDNS_LOCAL_NAME"),
		ParkingSpots:  viper.GetInt("PARKING_SPOTS"),
	}
	return cfg, nil
}
