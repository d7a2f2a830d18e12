package main

import (
	"os"

	"taskboard/internal/cli"
)

// @title           Taskboard API
// @version         1.0
// @description     Team task dashboard, personal todos, bulletin board and daily diary.

// @host      localhost:8080
// @BasePath  /

// @schemes http
func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
