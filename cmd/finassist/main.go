package main

import "finassist/internal/cli"

func main() {
	cli.Execute()
}
