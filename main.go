package main

import "github.com/MPC-IT/calllog-sync/cmd"

func main() {
	cmd.Execute()
}
