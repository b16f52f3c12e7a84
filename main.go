package main

import "github.com/yeisme/raml2doc/cmd"

func main() {
	cmd.Execute()
}
