package config

import (
	"errors"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings reúne as variáveis de ambiente da API
type Settings struct {
	Port        string
	Environment string
	Timezone    string

	StoreDriver string
	DataDir     string
	UploadDir   string
	UploadMaxMB int64

	JWTSecret     string
	JWTTTL        time.Duration
	AdminEmail    string
	AdminPassword string

	RedisAddr             string
	MaxRequestCountByIP   int
	MaxRequestCountGlobal int64

	ElasticsearchURL      string
	ElasticsearchUsername string
	ElasticsearchPassword string
	ElasticsearchIndex    string
	ElasticsearchSynonyms string

	MongoURI      string
	MongoDatabase string
	SQLServerDSN  string

	CorsOrigins []string
	CertFile    string
	KeyFile     string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string
	ComiteEmails []string

	StatsCron string
	LogDir    string
	LogLevel  string
}

// LoadEnvFile carrega o .env do container ou, em desenvolvimento, o do diretório atual.
// A ausência do arquivo não é erro: as variáveis podem vir do ambiente.
func LoadEnvFile() error {
	envPath := "/app/.env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = ".env"
	}
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(envPath)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT_APP", "development")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("STORE_DRIVER", "json")
	v.SetDefault("DATA_DIR", "./data")
	v.SetDefault("UPLOAD_DIR", "./uploads")
	v.SetDefault("UPLOAD_MAX_MB", 10)
	v.SetDefault("JWT_TTL", "1h")
	v.SetDefault("MAX_REQUEST_COUNT_BY_IP", 120)
	v.SetDefault("MAX_REQUEST_COUNT_GLOBAL", 50)
	v.SetDefault("ELASTICSEARCH_USERNAME", "elastic")
	v.SetDefault("ELASTICSEARCH_INDEX", "denuncias")
	v.SetDefault("MONGO_DATABASE", "portal_seguranca")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("STATS_CRON", "@every 5m")
	v.SetDefault("LOG_DIR", "./logs")
	v.SetDefault("LOG_LEVEL", "INFO")
}

// LoadSettings lê as variáveis de ambiente (já com o .env aplicado) usando viper
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return settingsFrom(v)
}

func settingsFrom(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT_APP"),
		Timezone:    v.GetString("TIMEZONE"),

		StoreDriver: strings.ToLower(v.GetString("STORE_DRIVER")),
		DataDir:     v.GetString("DATA_DIR"),
		UploadDir:   v.GetString("UPLOAD_DIR"),
		UploadMaxMB: v.GetInt64("UPLOAD_MAX_MB"),

		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTTTL:        v.GetDuration("JWT_TTL"),
		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),

		RedisAddr:             v.GetString("REDIS_ADDR"),
		MaxRequestCountByIP:   v.GetInt("MAX_REQUEST_COUNT_BY_IP"),
		MaxRequestCountGlobal: v.GetInt64("MAX_REQUEST_COUNT_GLOBAL"),

		ElasticsearchURL:      v.GetString("ELASTICSEARCH_URL"),
		ElasticsearchUsername: v.GetString("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword: v.GetString("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndex:    v.GetString("ELASTICSEARCH_INDEX"),
		ElasticsearchSynonyms: v.GetString("ELASTICSEARCH_SYNONYMS_FILE"),

		MongoURI:      v.GetString("MONGO_URI"),
		MongoDatabase: v.GetString("MONGO_DATABASE"),
		SQLServerDSN:  v.GetString("SQLSERVER_DSN"),

		CorsOrigins: splitList(v.GetString("CORS_ORIGINS")),
		CertFile:    v.GetString("CERT_FILE"),
		KeyFile:     v.GetString("KEY_FILE"),

		SMTPHost:     v.GetString("SMTP_HOST"),
		SMTPPort:     v.GetInt("SMTP_PORT"),
		SMTPUser:     v.GetString("SMTP_USER"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		SMTPFrom:     v.GetString("SMTP_FROM"),
		ComiteEmails: splitList(v.GetString("COMITE_EMAILS")),

		StatsCron: v.GetString("STATS_CRON"),
		LogDir:    v.GetString("LOG_DIR"),
		LogLevel:  v.GetString("LOG_LEVEL"),
	}

	if s.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if s.JWTTTL <= 0 {
		s.JWTTTL = time.Hour
	}
	if s.UploadMaxMB <= 0 {
		s.UploadMaxMB = 10
	}
	if s.MaxRequestCountGlobal <= 0 {
		s.MaxRequestCountGlobal = 50
	}

	return s, nil
}

// IsProduction indica ENVIRONMENT_APP=production
func (s *Settings) IsProduction() bool {
	return strings.EqualFold(s.Environment, "production") || strings.EqualFold(s.Environment, "prod")
}

// TLSEnabled indica se CERT_FILE e KEY_FILE foram informados
func (s *Settings) TLSEnabled() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

// Location retorna o fuso configurado; se inválido, o fuso local do processo
func (s *Settings) Location() *time.Location {
	if loc, err := time.LoadLocation(s.Timezone); err == nil {
		return loc
	}
	return time.Local
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
