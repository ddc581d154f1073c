// Package logger wraps charmbracelet/log behind a small structured Logger
// interface and carries it through contexts.
package logger
