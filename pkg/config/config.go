package config

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Drivers de almacén soportados.
const (
	StoreDynamoDB = "dynamodb"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	Store  StoreConfig
	AWS    AWSConfig
	DB     DBConfig
	HTTP      HTTPConfig
	Lambda    LambdaConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string `validate:"required"` // development, staging, production
	Name     string `validate:"required"`
	LogLevel string `validate:"oneof=trace debug info warn error"`
	// ExposeErrorDetail incluye el texto del error subyacente en las respuestas 500.
	ExposeErrorDetail bool
}

// StoreConfig selecciona y describe el almacén de registros.
type StoreConfig struct {
	Driver string `validate:"oneof=dynamodb postgres memory"`
	Table  string `validate:"required"`
	// KeyAttributes fija el key schema; vacío = preguntarle al almacén (DescribeTable).
	KeyAttributes []string `validate:"omitempty,unique"`
}

// AWSConfig configuración del cliente AWS (DynamoDB).
type AWSConfig struct {
	Region           string
	DynamoDBEndpoint string // opcional: DynamoDB Local / LocalStack
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int `validate:"min=1,max=65535"`
	User        string
	Password    string
	DBName      string
	SSLMode     string
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

// HTTPConfig configuración del servidor HTTP local.
type HTTPConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LambdaConfig indica qué handler sirve el binario de Lambda.
type LambdaConfig struct {
	Handler string `validate:"omitempty,oneof=delete_item get_item get_location_items"`
}

// TelemetryConfig exportación de trazas OTLP/HTTP. Sin Endpoint no se exporta nada.
type TelemetryConfig struct {
	Endpoint string `validate:"omitempty,hostname_port"` // host:port del collector
	URLPath  string `validate:"required,startswith=/"`
	Insecure bool
	// Headers se envían en cada exportación (p. ej. Authorization).
	Headers map[string]string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, STORE_DRIVER, STORE_TABLE, AWS_REGION, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:               getString(v, "APP_ENV", "production"),
			Name:              getString(v, "APP_NAME", "inventory-records"),
			LogLevel:          getString(v, "LOG_LEVEL", "info"),
			ExposeErrorDetail: getBool(v, "EXPOSE_ERROR_DETAIL", true),
		},
		Store: StoreConfig{
			Driver:        strings.ToLower(getString(v, "STORE_DRIVER", StoreDynamoDB)),
			Table:         getString(v, "STORE_TABLE", "Inventory"),
			KeyAttributes: getList(v, "STORE_KEY_ATTRIBUTES"),
		},
		AWS: AWSConfig{
			Region:           getString(v, "AWS_REGION", ""),
			DynamoDBEndpoint: getString(v, "DYNAMODB_ENDPOINT", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventory"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Lambda: LambdaConfig{
			Handler: getString(v, "LAMBDA_HANDLER", ""),
		},
		Telemetry: TelemetryConfig{
			Endpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			URLPath:  getString(v, "OTEL_EXPORTER_OTLP_TRACES_PATH", "/v1/traces"),
			Insecure: getBool(v, "OTEL_EXPORTER_OTLP_INSECURE", false),
			Headers:  getHeaders(v, "OTEL_EXPORTER_OTLP_HEADERS"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, validationError(err)
	}
	return cfg, nil
}

// validationError resume los errores del validador como campo=valor: regla.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("configuración inválida: %w", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s=%v: %s", fe.Namespace(), fe.Value(), fe.Tag()))
	}
	return fmt.Errorf("configuración inválida: %s", strings.Join(parts, "; "))
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}

// getList lee una lista separada por comas, descartando entradas vacías.
func getList(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}
	var out []string
	for _, s := range strings.Split(v.GetString(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// getHeaders lee pares clave=valor separados por comas (formato de OTEL_EXPORTER_OTLP_HEADERS).
func getHeaders(v *viper.Viper, key string) map[string]string {
	out := map[string]string{}
	for _, pair := range getList(v, key) {
		k, val, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(val)
	}
	return out
}
