package config

import (
	"os"
	"time"
)

// parseEnv overlays values from environment variables. PORT is honoured as
// a bare port number for platforms that inject it; ADDRESS wins over it.
// Duration variables use Go duration syntax ("90m").
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}

	lookupString("ADDRESS", &config.EndpointAddrHTTP)
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("JWT_SECRET", &config.SecretKey)
	lookupDuration("ACCESS_TOKEN_TTL", &config.AccessTokenValidityDuration)
	lookupDuration("OTP_TTL", &config.OTPValidityDuration)
	lookupString("MAIL_PROVIDER", &config.MailProvider)
	lookupString("MAIL_FROM", &config.MailFrom)
	lookupString("AWS_REGION", &config.AWSRegion)
	lookupString("SES_ENDPOINT", &config.SESEndpoint)
	lookupString("SES_ACCESS_KEY_ID", &config.SESAccessKeyID)
	lookupString("SES_SECRET_ACCESS_KEY", &config.SESSecretAccessKey)
	lookupString("CORS_ORIGIN", &config.CORSOrigin)
	lookupString("LOG_LEVEL", &config.LogLevel)
	lookupString("LOG_FORMAT", &config.LogFormat)
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
