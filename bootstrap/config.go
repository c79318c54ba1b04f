package bootstrap

import (
	"github.com/kbukum/asrdrop/config"
)

// Config is the constraint for application configuration types. Any struct
// that embeds config.ServiceConfig gets GetServiceConfig by promotion and
// only needs its own ApplyDefaults and Validate.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
