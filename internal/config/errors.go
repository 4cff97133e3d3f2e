package config

import (
	"errors"
)

var (
	// ErrDBHostEmpty error if config db.host is empty for a network engine.
	ErrDBHostEmpty = errors.New("toml config db.host can not be empty")

	// ErrDBPortCanNotBeZero error if config db.port is 0 for a network engine.
	ErrDBPortCanNotBeZero = errors.New("toml config db.port can not be 0")

	// ErrDBNameEmpty error if config db.name is empty.
	ErrDBNameEmpty = errors.New("toml config db.name can not be empty")

	// ErrUnknownGormEngine error if config db.gormengine is not a supported engine.
	ErrUnknownGormEngine = errors.New("toml config db.gormengine must be mysql, postgres or sqlite")
)
