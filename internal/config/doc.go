// Package config defines the application configuration structure and
// loading logic. Configuration is environment-driven; required values that
// are absent make Load fail, and the process exits at startup.
package config
