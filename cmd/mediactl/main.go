package main

import "github.com/ignatzorin/mediadb-backend/internal/cli"

func main() {
	cli.Execute()
}
