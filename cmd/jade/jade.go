package main

import (
	"log"

	"github.com/jaallen85/jade-py-sub000/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
