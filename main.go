package main

import "github.com/wayfarer-core-poc/server/internal/cli"

func main() {
	cli.Main()
}
