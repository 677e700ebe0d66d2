package main

import "tennisoath/cmd/oath/root"

func main() {
	root.Execute()
}
