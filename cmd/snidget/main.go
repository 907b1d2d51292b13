package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/snidget-dev/snidget/internal/commands"
)

func main() {
	// Optional .env can set SNIDGET_DIR; a missing file is fine.
	_ = godotenv.Load()

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
