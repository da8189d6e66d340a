package config

import "errors"

var (
	ErrNoAdapterAddress   = errors.New("backend address is not specified")
	ErrNoServerAddress    = errors.New("server listen address is not specified")
	ErrNegativeTimeout    = errors.New("request timeout is negative")
	ErrUnknownClearPolicy = errors.New("unknown clear policy")
	ErrKeyHashTooShort    = errors.New("server key hash is shorter than the 32-character derivation prefix")
)
