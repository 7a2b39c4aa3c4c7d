package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	DB      DBConfig      `mapstructure:"db"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Kafka   KafkaConfig   `mapstructure:"kafka"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
	Deposit DepositConfig `mapstructure:"deposit"`
	KYC     KYCConfig     `mapstructure:"kyc"`
}

type AppConfig struct {
	Env         string `mapstructure:"env"`
	HttpPort    string `mapstructure:"http_port"`
	FrontendURL string `mapstructure:"frontend_url"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	ExpireHour int    `mapstructure:"expire_hour"`
}

type SMTPConfig struct {
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	AdminEmail string `mapstructure:"admin_email"` // 钱包地址复制告警收件人
}

// DepositConfig 每种币对应一个固定的收款地址 (共享地址，非按用户生成)
type DepositConfig struct {
	Addresses map[string]string `mapstructure:"addresses"`
}

type KYCConfig struct {
	UploadDir string `mapstructure:"upload_dir"`
}

var Global Config

func Init() {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// 环境变量设置
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 设置默认值
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")
	viper.SetDefault("app.frontend_url", "http://localhost:3000")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "ledger_user")
	viper.SetDefault("db.password", "ledger_password")
	viper.SetDefault("db.name", "ledger_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.mq_type", "redis")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expire_hour", 24)

	viper.SetDefault("smtp.from", "noreply@example.com")

	viper.SetDefault("kyc.upload_dir", "uploads/kyc")

	// 收款地址是静态配置：每种币一个固定地址，充值确认是人工信任行为
	viper.SetDefault("deposit.addresses", map[string]string{
		"bitcoin":   "bc1qgvry4pf374d7wgddslw7gymrfm2geswsde26ct",
		"ethereum":  "0xdd1727b7E38E19f4fe9cf6C0aEbA72b22d5B3C2f",
		"ripple":    "rGhee3BsGTR9dS1eep4WvcoTEfF7EDGFq2",
		"stellar":   "GBAFJKIU3S2UKSVGL7RK4PMY3HRHHN4DPGYNX5PHWUQAZRFEJBU7TGI5",
		"usdt":      "0xdd1727b7E38E19f4fe9cf6C0aEbA72b22d5B3C2f",
		"bnb":       "0xdd1727b7E38E19f4fe9cf6C0aEbA72b22d5B3C2f",
		"bnb_tiger": "0xdd1727b7E38E19f4fe9cf6C0aEbA72b22d5B3C2f",
	})
}
