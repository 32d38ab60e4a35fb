package main

import "lingobridge/internal/cli"

func main() {
	cli.Execute()
}
