package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// 数据源类型
const (
	DataSourcePostgres = "postgres" // 线上PostgreSQL存储
	DataSourceMongo    = "mongo"    // 线上MongoDB存储
	DataSourceMemory   = "memory"   // 内存Fixture存储（本地/演示模式）
)

// Config 应用配置
type Config struct {
	App        AppConfig       `mapstructure:"app"`
	Server     ServerConfig    `mapstructure:"server"`
	DataSource string          `mapstructure:"data_source"`
	Database   DatabaseConfig  `mapstructure:"database"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Kafka      KafkaConfig     `mapstructure:"kafka"`
	Telemetry  TelemetryConfig `mapstructure:"telemetry"`
}

// AppConfig 应用配置
type AppConfig struct {
	Name      string `mapstructure:"name"`
	Version   string `mapstructure:"version"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
}

// HTTPConfig HTTP服务配置
type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Timeout string `mapstructure:"timeout"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	PostgreSQL PostgreSQLConfig `mapstructure:"postgresql"`
	MongoDB    MongoDBConfig    `mapstructure:"mongodb"`
}

// PostgreSQLConfig PostgreSQL配置
type PostgreSQLConfig struct {
	DSN    string `mapstructure:"dsn"`
	DBName string `mapstructure:"db_name"`
}

// MongoDBConfig MongoDB配置
type MongoDBConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"db_name"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// KafkaConfig Kafka配置
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
}

// TelemetryConfig 链路追踪配置
type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Exporter string `mapstructure:"exporter"`
}

// LoadConfig 加载配置：默认值 < 可选的yaml配置文件 < 环境变量
func LoadConfig(serviceName string) *Config {
	v := viper.New()
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, serviceName)

	// 配置文件是可选的，缺失时只用默认值和环境变量
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Sprintf("读取配置文件失败: %v", err))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("解析配置失败: %v", err))
	}
	return &cfg
}

// setDefaults 按服务名设置默认值
func setDefaults(v *viper.Viper, serviceName string) {
	var defaultHTTPPort, defaultDataSource string
	switch serviceName {
	case "reaction-service":
		defaultHTTPPort = "21001"
		defaultDataSource = DataSourcePostgres
	case "mood-service":
		defaultHTTPPort = "21002"
		defaultDataSource = DataSourceMongo
	default:
		panic(fmt.Sprintf("未知的服务名称: %s，支持的服务名称: reaction-service, mood-service", serviceName))
	}

	v.SetDefault("app.name", serviceName)
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.jwt_secret", "mindcare")

	v.SetDefault("server.http.addr", ":"+defaultHTTPPort)
	v.SetDefault("server.http.timeout", "30s")

	v.SetDefault("data_source", defaultDataSource)

	v.SetDefault("database.postgresql.dsn",
		"host=localhost user=postgres password=postgres dbname="+serviceName+"DB port=5432 sslmode=disable")
	v.SetDefault("database.postgresql.db_name", serviceName+"DB")
	v.SetDefault("database.mongodb.uri", "mongodb://localhost:27017")
	v.SetDefault("database.mongodb.db_name", serviceName+"DB")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("kafka.enabled", true)
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})

	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.exporter", "stdout")
}
