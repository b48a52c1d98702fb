package main

import "github.com/Manu343726/sawfish/cmd"

func main() {
	cmd.Execute()
}
