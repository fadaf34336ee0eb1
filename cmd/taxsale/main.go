package main

import (
	"context"

	"github.com/joho/godotenv"

	"taxsale-agent/cmd/taxsale/commands"
)

func main() {
	// Missing .env is fine; the environment itself may carry the config.
	_ = godotenv.Load()
	commands.ExecuteContext(context.Background())
}
