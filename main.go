package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/theirongolddev/spendlog/cmd"
)

func main() {
	cmd.Execute()
}
