package main

import (
	_ "embed"

	"github.com/linkdeck/link-bio-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
