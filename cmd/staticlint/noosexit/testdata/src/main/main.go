package main

import "os"

func helper() {
	os.Exit(1) // allowed outside main.main
}

func main() {
	helper()
	os.Exit(1) // want "avoid using os.Exit in main.main"
}
