package main

import (
	"os"

	"github.com/poppolopoppo/slngen"
)

/***************************************
 * Launch Command (program entry point)
 ***************************************/

func main() {
	if err := slngen.LaunchCommand("slngen"); err != nil {
		os.Exit(1)
	}
}
