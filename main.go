package main

import (
	"animix-api/cmd"
	_ "animix-api/cmd/fetch"
)

func main() {
	cmd.Execute()
}
