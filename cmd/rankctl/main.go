package main

import "ranking-insight/internal/cli"

func main() {
	cli.Execute()
}
