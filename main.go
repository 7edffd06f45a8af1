package main

import "github.com/umlsql/umlsql/cmd"

func main() {
	cmd.Execute()
}
