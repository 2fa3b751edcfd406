package main

import "github.com/Bitlatte/folio/cmd"

func main() {
	cmd.Execute()
}
