package main

import (
	"os"

	"github.com/teranos/itl2py/cmd/itl2py/commands"
	"github.com/teranos/itl2py/logger"
)

func main() {
	err := commands.RootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}
