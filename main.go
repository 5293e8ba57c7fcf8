package main

import "verso/internal/cli"

func main() {
	cli.Execute()
}
