package main

import "github.com/pombreda/appinst/cmd"

func main() {
	cmd.Execute()
}
