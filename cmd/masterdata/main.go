package main

import "github.com/csg33k/masterdash/cmd/masterdata/cmd"

func main() {
	cmd.Execute()
}
