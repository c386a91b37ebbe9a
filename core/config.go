package core

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName   string
		Env       string // DEV (local; default), TEST, QA, PROD
		Debug     bool
		TestMode  bool
		Build     string
		SecretKey string

		RollbarToken string

		OTP      OTPConfig
		Server   ServerConfig
		Database DatabaseConfig
	}

	OTPConfig struct {
		ExpirationDelta time.Duration
	}

	ServerConfig struct {
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	DatabaseConfig struct {
		Engine        string
		Name          string
		Host          string
		Port          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		DisableTLS    bool
	}
)

func (dbc DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%s", dbc.Host, dbc.Port)
}

// NewConfig loads the app configuration from the environment,
// falling back to defaults for anything unset.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Elimu")
	conf.SetDefault("build", "dev")
	conf.SetDefault("secretKey", "q2dj#vq8-p$ym&30n1z+4(e_7m5kx^s2(#yg4h^$cegm2emyn0")
	conf.SetDefault("otpExpirationDelta", 5*time.Minute)
	conf.SetDefault("serverHost", "0.0.0.0:8000")
	conf.SetDefault("serverDebugHost", "0.0.0.0:4000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("databaseEngine", "inmem")
	conf.SetDefault("databaseName", "elimu")
	conf.SetDefault("databaseHost", "localhost")
	conf.SetDefault("databasePort", "5432")
	conf.SetDefault("databaseDisableTLS", true)

	env := os.Getenv("ENV")
	switch strings.ToUpper(env) {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	env = strings.ToUpper(env)
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		Build:        conf.GetString("build"),
		SecretKey:    conf.GetString("secretKey"),
		RollbarToken: conf.GetString("rollbarToken"),
		OTP: OTPConfig{
			ExpirationDelta: conf.GetDuration("otpExpirationDelta"),
		},
		Server: ServerConfig{
			Host:               conf.GetString("serverHost"),
			DebugHost:          conf.GetString("serverDebugHost"),
			ShutdownTimeout:    conf.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: conf.GetDuration("jwtExpirationDelta"),
		},
		Database: DatabaseConfig{
			Engine:        conf.GetString("databaseEngine"),
			Name:          conf.GetString("databaseName"),
			Host:          conf.GetString("databaseHost"),
			Port:          conf.GetString("databasePort"),
			User:          conf.GetString("databaseUser"),
			Password:      conf.GetString("databasePassword"),
			AdminUser:     conf.GetString("databaseAdminUser"),
			AdminPassword: conf.GetString("databaseAdminPassword"),
			DisableTLS:    conf.GetBool("databaseDisableTLS"),
		},
	}
}
