package main

import "github.com/zbierak/ipa/cmd"

func main() {
	cmd.Execute()
}
