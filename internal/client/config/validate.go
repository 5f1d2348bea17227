package config

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var errPrefixSlash = errors.New("must start with /")

// Validate checks that the server URL is usable and the timeout positive.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ServerURL, validation.Required, is.URL),
		validation.Field(&c.RoutePrefix, validation.By(func(any) error {
			if c.RoutePrefix != "" && !strings.HasPrefix(c.RoutePrefix, "/") {
				return errPrefixSlash
			}
			return nil
		})),
		validation.Field(&c.RequestTimeout, validation.Required, validation.Min(0).Exclusive()),
	)
}
