package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
