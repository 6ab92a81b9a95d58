package main

import "github.com/adnanhd/adnanhd.github.io/cmd"

func main() {
	cmd.Execute()
}
