package main

import (
	"os"

	"github.com/brandalign/brandalign/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
