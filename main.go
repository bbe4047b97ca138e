package main

import (
	"groupcal/cmd"
)

// version will be set during build
var version = "dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
