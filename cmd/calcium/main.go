package main

import (
	"os"

	"github.com/calciumlabs/calcium/cmd/calcium/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
