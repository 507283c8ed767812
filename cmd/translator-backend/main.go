package main

import (
	"os"

	"translator-backend/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
