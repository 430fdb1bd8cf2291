package main

import "github.com/smart-dc/mlflowctl/internal/cmd"

func main() {
	cmd.Execute()
}
