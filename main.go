package main

import "github.com/mosdac/assist/cmd"

func main() {
	cmd.Execute()
}
