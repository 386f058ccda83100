package main

import "github.com/user/mindvault/cmd"

func main() {
	cmd.Execute()
}
