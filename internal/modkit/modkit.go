// Package modkit wires modules: shared deps, build options and route mounting
package modkit

import (
	"tgcheck/internal/modkit/module"
	"tgcheck/internal/platform/config"
	"tgcheck/internal/platform/logger"
)

// Module is the contract every module satisfies
type Module = module.Module

// Deps are handed to every module constructor
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
}
