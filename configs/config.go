package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	XClientID     string
	XClientSecret string
	XRedirectURI  string
	TogetherKey   string
	TogetherModel string
	TogetherURL   string
	PostgresURI   string
	RedisURI      string
	FrontendURL   string
	R2            R2
	SecretKey     string
	CookieName    string
}

func LoadConfig() *Config {
	return &Config{
		XClientID:     getEnv("X_CLIENT_ID", ""),
		XClientSecret: getEnv("X_CLIENT_SECRET", ""),
		XRedirectURI:  getEnv("X_REDIRECT_URI", "http://localhost:3000/login/callback"),
		TogetherKey:   getEnv("TOGETHER_API_KEY", ""),
		TogetherModel: getEnv("TOGETHER_MODEL", "meta-llama/Llama-3.3-70B-Instruct-Turbo-Free"),
		TogetherURL:   getEnv("TOGETHER_API_URL", "https://api.together.xyz/v1"),
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", ""),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:5173"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:  getEnv("SECRET_KEY", ""),
		CookieName: getEnv("COOKIE_NAME", "marketeer_session"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
