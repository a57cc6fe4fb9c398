package main

import (
	"log"

	"github.com/tinyapp/linkshrt/internal/app"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatalf("error initializing application: %v", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
