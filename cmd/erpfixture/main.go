package main

import "github.com/dbsmedya/erpfixture/cmd/erpfixture/cmd"

func main() {
	cmd.Execute()
}
