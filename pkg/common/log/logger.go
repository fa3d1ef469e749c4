/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package log is the module logger of bbsproof. It exposes the aries component logger under one import
// so packages and commands share levels and the provider.
package log

import (
	"github.com/hyperledger/aries-framework-go/component/log"
	spilog "github.com/hyperledger/aries-framework-go/spi/log"
)

// Log is a module based logger.
type Log = log.Log

// Level defines all available log levels for logging messages.
type Level = spilog.Level

// Logger represents a general interface for logging.
type Logger = spilog.Logger

// LoggerProvider is a factory for moduled loggers.
type LoggerProvider = spilog.LoggerProvider

// Log levels.
const (
	CRITICAL = spilog.CRITICAL
	ERROR    = spilog.ERROR
	WARNING  = spilog.WARNING
	INFO     = spilog.INFO
	DEBUG    = spilog.DEBUG
)

// New creates and returns a Logger implementation based on given module name.
// The underlying logger instance is lazy initialized on first use.
func New(module string) *Log {
	return log.New(module)
}

// Initialize sets a custom logging provider. It must be called before the first log line.
func Initialize(l LoggerProvider) {
	log.Initialize(l)
}

// SetLevel sets the log level of module. Default is INFO.
func SetLevel(module string, level Level) {
	log.SetLevel(module, level)
}

// GetLevel returns the log level of module.
func GetLevel(module string) Level {
	return log.GetLevel(module)
}

// IsEnabledFor reports whether level is logged for module.
func IsEnabledFor(module string, level Level) bool {
	return log.IsEnabledFor(module, level)
}

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (Level, error) {
	return log.ParseLevel(level)
}
