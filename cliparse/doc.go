// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - DatabaseURL: Poll archive database (optional, empty disables the archive)
  - DatabaseType: sqlite (default) or postgres
  - LogFormat: auto, text or json (auto picks text on a terminal)
  - LogLevel: debug, info, warn or error

# CLI Flags

	-p           Server port
	-d           Database URL
	-t           Database type
	-log-format  Log format
	-log-level   Log level

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	LOG_FORMAT    → -log-format
	LOG_LEVEL     → -log-level

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing, so values there behave like
regular environment variables.
*/
package cliparse
