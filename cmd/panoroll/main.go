package main

import "github.com/MeKo-Tech/panoroll/cmd/panoroll/cmd"

func main() {
	cmd.Execute()
}
