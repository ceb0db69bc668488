package main

import "github.com/cmlabs-hris/wage-tracker/cmd/seed/cmd"

func main() {
	cmd.Execute()
}
