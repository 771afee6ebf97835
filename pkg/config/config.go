package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backends de almacenamiento soportados.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env, con .env opcional).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	Matching MatchingConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env          string // development, staging, production
	Name         string
	InstanceName string // nombre que se imprime en documentos y en /api/version
	LogLevel     string
	Storage      string // postgres | memory
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	Migrate     bool // aplicar migraciones al arrancar
	ForceIPv4   bool // resolver el host a IPv4 al conectar (contenedores sin IPv6)
	Pool        PoolConfig
}

// PoolConfig tamaño y ciclo de vida de las conexiones del pool.
type PoolConfig struct {
	MaxConns          int
	MinConns          int
	MaxConnLifetime   time.Duration
	MaxConnIdleTime   time.Duration
	HealthCheckPeriod time.Duration
	ConnectTimeout    time.Duration // tope del primer ping al arrancar
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// MatchingConfig parámetros de la búsqueda aproximada de fabricantes.
type MatchingConfig struct {
	Threshold int // 1..100
}

// Load lee la configuración desde variables de entorno. Un archivo .env en el directorio actual
// se carga primero sin pisar variables ya definidas.
func Load() (*Config, error) {
	_ = godotenv.Load() // sin .env no es error

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:          v.GetString("APP_ENV"),
			Name:         v.GetString("APP_NAME"),
			InstanceName: v.GetString("INSTANCE_NAME"),
			LogLevel:     v.GetString("LOG_LEVEL"),
			Storage:      strings.ToLower(v.GetString("STORAGE")),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
			Migrate:     v.GetBool("DB_MIGRATE"),
			ForceIPv4:   v.GetBool("DB_FORCE_IPV4"),
			Pool: PoolConfig{
				MaxConns:          v.GetInt("DB_MAX_CONNS"),
				MinConns:          v.GetInt("DB_MIN_CONNS"),
				MaxConnLifetime:   v.GetDuration("DB_MAX_CONN_LIFETIME"),
				MaxConnIdleTime:   v.GetDuration("DB_MAX_CONN_IDLE_TIME"),
				HealthCheckPeriod: v.GetDuration("DB_HEALTH_CHECK_PERIOD"),
				ConnectTimeout:    v.GetDuration("DB_CONNECT_TIMEOUT"),
			},
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Matching: MatchingConfig{
			Threshold: v.GetInt("MATCH_THRESHOLD"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate verifica combinaciones inválidas de configuración.
func (c *Config) Validate() error {
	switch c.App.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("config: STORAGE debe ser %q o %q, recibido %q", StoragePostgres, StorageMemory, c.App.Storage)
	}
	if c.Matching.Threshold < 1 || c.Matching.Threshold > 100 {
		return fmt.Errorf("config: MATCH_THRESHOLD fuera de rango (1-100): %d", c.Matching.Threshold)
	}
	if p := c.DB.Pool; p.MaxConns < 1 || p.MinConns < 0 || p.MinConns > p.MaxConns {
		return fmt.Errorf("config: DB_MIN_CONNS (%d) y DB_MAX_CONNS (%d) inválidos", p.MinConns, p.MaxConns)
	}
	if c.JWT.Expiration <= 0 {
		return fmt.Errorf("config: JWT_EXPIRATION_MINUTES debe ser positivo")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "inventario-pedidos")
	v.SetDefault("INSTANCE_NAME", "InvenTree")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "inventario_pedidos")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MIGRATE", false)
	v.SetDefault("DB_FORCE_IPV4", false)
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_MAX_CONN_LIFETIME", "1h")
	v.SetDefault("DB_MAX_CONN_IDLE_TIME", "30m")
	v.SetDefault("DB_HEALTH_CHECK_PERIOD", "1m")
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "inventario-pedidos")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("MATCH_THRESHOLD", 65)
}
