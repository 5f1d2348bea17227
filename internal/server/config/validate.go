package config

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	errSameSecrets = errors.New("must differ from the access token secret")
	errDSNRequired = errors.New("is required for the postgres storage driver")
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Env, validation.Required, validation.In("local", "dev", "prod")),
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.StorageDriver, validation.Required, validation.In(StoragePostgres, StorageMemory)),
		validation.Field(&c.DatabaseDSN, validation.By(func(any) error {
			if c.StorageDriver == StoragePostgres && c.DatabaseDSN == "" {
				return errDSNRequired
			}
			return nil
		})),
		validation.Field(&c.AccessSecret, validation.Required),
		validation.Field(&c.RefreshSecret, validation.Required, validation.By(func(any) error {
			if c.RefreshSecret == c.AccessSecret {
				return errSameSecrets
			}
			return nil
		})),
		validation.Field(&c.AccessTokenTTL, validation.Required, validation.Min(0).Exclusive()),
		validation.Field(&c.RefreshTokenTTL, validation.Required, validation.Min(0).Exclusive()),
		validation.Field(&c.BcryptCost, validation.Required, validation.Min(bcrypt.MinCost), validation.Max(bcrypt.MaxCost)),
		validation.Field(&c.ShutdownTimeout, validation.Required),
	)
}
