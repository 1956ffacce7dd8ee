package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port       string `env:"PORT" envDefault:"8000"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName     string `env:"DB_NAME" envDefault:"afritrade"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	StorageBucket     string `env:"STORAGE_BUCKET"`

	JWTSecret   string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTTTLHours int    `env:"JWT_TTL_HOURS" envDefault:"72"`

	RagBaseURL string `env:"RAG_BASE_URL" envDefault:"https://af-rag.onrender.com"`

	IremboPayBaseURL   string `env:"IREMBOPAY_BASE_URL" envDefault:"https://api.irembopay.com"`
	IremboPaySecretKey string `env:"IREMBOPAY_SECRET_KEY"`
	IremboPayPublicKey string `env:"IREMBOPAY_PUBLIC_KEY"`
	IremboPayAccountID string `env:"IREMBOPAY_ACCOUNT_ID"`

	GeminiModel string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
