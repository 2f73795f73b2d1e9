package main

import (
	"log"

	"github.com/adirathodd/careerpilot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
