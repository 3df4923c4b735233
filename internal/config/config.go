package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// JWTConfig defines issuer/secret pair for admin token verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
// Config は環境変数から読み込んだ実行時設定をアプリ全体で共有する。
type Config struct {
	Addr            string
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
	ConnectTimeout  time.Duration
	RequestTimeout  time.Duration
	AllowedOrigins  []string
	LogLevel        string
	LogFormat       string
	JWTConfigs      []JWTConfig
	JWTAudience     string
}

// AdminEnabled reports whether the admin surface can verify tokens.
func (c Config) AdminEnabled() bool {
	return len(c.JWTConfigs) > 0
}

// Load reads environment variables and returns a fully populated Config.
// Mongo 接続情報は必須。欠けている場合はプロセスを落とさずエラーとして返し、
// 呼び出し側(serve コマンド)でログに残せるようにしている。
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var missing []string
	for _, key := range []string{"mongo_uri", "mongo_db", "mongo_collection"} {
		if strings.TrimSpace(v.GetString(key)) == "" {
			missing = append(missing, strings.ToUpper(key))
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	cfg := Config{
		Addr:            v.GetString("http_addr"),
		MongoURI:        strings.TrimSpace(v.GetString("mongo_uri")),
		MongoDatabase:   strings.TrimSpace(v.GetString("mongo_db")),
		MongoCollection: strings.TrimSpace(v.GetString("mongo_collection")),
		ConnectTimeout:  v.GetDuration("mongo_connect_timeout"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		AllowedOrigins:  parseList(v.GetString("allowed_origins")),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		JWTAudience:     strings.TrimSpace(v.GetString("admin_jwt_audience")),
	}

	// ADMIN_JWT_SECRET 未設定の場合は管理系ルートを無効化したまま起動する。
	if secret := strings.TrimSpace(v.GetString("admin_jwt_secret")); secret != "" {
		cfg.JWTConfigs = append(cfg.JWTConfigs, JWTConfig{
			Issuer: strings.TrimSpace(v.GetString("admin_jwt_issuer")),
			Secret: []byte(secret),
		})
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("mongo_connect_timeout", 10*time.Second)
	v.SetDefault("request_timeout", 5*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("admin_jwt_issuer", "telecom-hire-admin")
}

// parseList splits a comma separated value, dropping empty entries.
// ALLOWED_ORIGINS が未設定・空の場合は nil を返し、CORS ヘッダーを一切付与しない
// (制限的デフォルト)。
func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return nil
	}
	return values
}
