package main

import "github.com/SoloCapybara/HRMS-NEXT/cmd/hrctl/cmd"

func main() {
	cmd.Execute()
}
