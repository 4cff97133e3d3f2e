package config

import (
	"github.com/spoolkeeper/spoolkeeper/internal/logger"
)

// Config overall data structure.
type Config struct {
	DevMode bool // enable dev mode for development
	DB      DB
	Log     logger.Log
	Title   string
}
