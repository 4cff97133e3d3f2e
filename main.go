package main

import (
	"os"

	"github.com/spoolkeeper/spoolkeeper/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
