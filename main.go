package main

import "github.com/marcoviana/awsvault/cmd"

func main() {
	cmd.Execute()
}
