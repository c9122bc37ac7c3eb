package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Duration unmarshals from either a Go duration string ("5m") or an
// integer number of nanoseconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return errors.New("invalid duration")
	}
}

// JsonConfig mirrors Config for JSON files. Pointer fields distinguish
// "absent" from "empty" so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP            *string   `json:"endpoint_addr_http"`
	DatabaseDSN                 *string   `json:"database_dsn"`
	SecretKey                   *string   `json:"secret_key"`
	AccessTokenValidityDuration *Duration `json:"access_token_validity_duration"`
	OTPValidityDuration         *Duration `json:"otp_validity_duration"`
	MailProvider                *string   `json:"mail_provider"`
	MailFrom                    *string   `json:"mail_from"`
	AWSRegion                   *string   `json:"aws_region"`
	SESEndpoint                 *string   `json:"ses_endpoint"`
	SESAccessKeyID              *string   `json:"ses_access_key_id"`
	SESSecretAccessKey          *string   `json:"ses_secret_access_key"`
	CORSOrigin                  *string   `json:"cors_origin"`
	LogLevel                    *string   `json:"log_level"`
	LogFormat                   *string   `json:"log_format"`
}

// parseJson overlays values from the file named by -c / -config. Without
// the flag it does nothing. An unreadable or malformed file panics, as a
// half-applied configuration is worse than none.
func parseJson(config *Config) {
	path := jsonConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Errorf("read config file: %w", err))
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(fmt.Errorf("parse config file: %w", err))
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setDuration(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration)
	setDuration(&config.OTPValidityDuration, c.OTPValidityDuration)
	setString(&config.MailProvider, c.MailProvider)
	setString(&config.MailFrom, c.MailFrom)
	setString(&config.AWSRegion, c.AWSRegion)
	setString(&config.SESEndpoint, c.SESEndpoint)
	setString(&config.SESAccessKeyID, c.SESAccessKeyID)
	setString(&config.SESSecretAccessKey, c.SESSecretAccessKey)
	setString(&config.CORSOrigin, c.CORSOrigin)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
