package main

import (
	"os"

	"virginia-ai/backend/internal/app"
)

func main() {
	os.Exit(app.Run())
}
