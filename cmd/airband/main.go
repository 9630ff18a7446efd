package main

import "github.com/tmaehler/airband/internal/cli"

func main() {
	cli.Execute()
}
