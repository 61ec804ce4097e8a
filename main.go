package main

import "github.com/aburry/learning-by-wrote/cmd"

func main() {
	cmd.Execute()
}
