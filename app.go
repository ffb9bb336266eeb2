package main

import "github.com/masmgr/gitlog2arrow/cmd"

func main() {
	cmd.Run()
}
