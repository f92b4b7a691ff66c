package main

import "github.com/dbsmedya/gopipeline/cmd/gopipeline/cmd"

func main() {
	cmd.Execute()
}
