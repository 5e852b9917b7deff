package appprops

import (
	"fmt"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads .env files into the process environment before a Load.
// Variables that are already set are never overridden. With no paths, ".env"
// in the working directory is used.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}
