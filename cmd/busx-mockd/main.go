package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"busx-cli/mockapi"
)

const defaultAddr = ":8640"

func main() {
	_ = godotenv.Load()

	addr := os.Getenv("BUSX_MOCK_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	if err := mockapi.New().Start(addr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
