package main

import "github.com/assetguy/assetguy/cmd"

func main() {
	cmd.Execute()
}
