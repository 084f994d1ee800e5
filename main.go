/*
Copyright © 2025 Danilepez
*/
package main

import (
	"github.com/Danilepez/chat-pdf-ai/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	// API keys and the Mongo URI come from the environment; a .env file is
	// optional outside local development.
	godotenv.Load()
}
