// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadEnv reads an optional .env file, then ParseFlags returns a Config:

	if err := cliparse.LoadEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p     Server port (default 8001)
	-e     Environment: development or production
	-seed  Load sample data (development only)
	-d     Result archive database URL or sqlite path
	-t     Database type: sqlite or postgres

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	APP_ENV       → -e
	SEED_DATA     → -seed
	DATABASE_URL  → -d
	DATABASE_TYPE → -t

CLI flags take precedence over environment variables, and variables
already set take precedence over the .env file.

# Validation

ParseFlags returns an error for a port outside 1-65535, an unknown
environment, or an unknown database type. No setting is required.
*/
package cliparse
