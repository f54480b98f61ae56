package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	DB       *DBconfig
	RabbitMq *RabbitMqconfig
	App      *Appconfig
	Srv      *Serviceconfig
	Log      *Loggerconfig
}

type DBconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}
type RabbitMqconfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Appconfig carries the two privileged principals and the gateway auth
// material. OwnerId and DriverAdminId are fixed at startup and never
// reassigned while the process lives.
type Appconfig struct {
	OwnerId         string `yaml:"owner_id"`
	DriverAdminId   string `yaml:"driver_admin_id"`
	JwtSecret       string `yaml:"jwt_secret"`
	OwnerPassHash   string `yaml:"owner_pass_hash"`
	AdminPassHash   string `yaml:"admin_pass_hash"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
}
type Serviceconfig struct {
	LedgerServicePort string `yaml:"ledger_service"`
}
type Loggerconfig struct {
	Level string `yaml:"level"`
}

func New() (*Config, error) {
	getEnv := func(key, def string) string {
		val := os.Getenv(key)
		if val == "" {
			fmt.Printf("using default key %v\n", def)
			return def
		}
		return val
	}

	getEnvInt := func(key string, def int) int {
		valStr := os.Getenv(key)
		if valStr == "" {
			fmt.Printf("using default key %v\n", def)
			return def
		}
		val, err := strconv.Atoi(valStr)
		if err != nil {
			fmt.Printf("using default key %v\n", def)
			return def
		}
		return val
	}

	cnf := &Config{
		DB: &DBconfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "ledger_user"),
			Password: getEnv("DB_PASSWORD", "ledger_pass"),
			Database: getEnv("DB_NAME", "ledger_db"),
		},
		RabbitMq: &RabbitMqconfig{
			Host:     getEnv("RABBITMQ_HOST", "localhost"),
			Port:     getEnvInt("RABBITMQ_PORT", 5672),
			User:     getEnv("RABBITMQ_USER", "guest"),
			Password: getEnv("RABBITMQ_PASSWORD", "guest"),
		},
		App: &Appconfig{
			OwnerId:         getEnv("OWNER_ACCOUNT_ID", "acc_owner"),
			DriverAdminId:   getEnv("DRIVER_ADMIN_ACCOUNT_ID", "acc_driver_admin"),
			JwtSecret:       getEnv("JWT_SECRET", "dev-secret-change-me"),
			OwnerPassHash:   getEnv("OWNER_PASS_HASH", ""),
			AdminPassHash:   getEnv("ADMIN_PASS_HASH", ""),
			TokenTTLMinutes: getEnvInt("TOKEN_TTL_MINUTES", 60),
		},
		Srv: &Serviceconfig{
			LedgerServicePort: getEnv("LEDGER_SERVICE_PORT", "3000"),
		},
		Log: &Loggerconfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
		},
	}

	return cnf, nil
}
