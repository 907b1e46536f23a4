package main

import "github.com/autoapply/fillengine/cmd"

func main() {
	cmd.Execute()
}
