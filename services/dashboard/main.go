package main

import (
	"os"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
