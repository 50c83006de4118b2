package main

import "github.com/youmna-rabie/uid2gateway/internal/cli"

func main() {
	cli.Execute()
}
