package main

import "quickbite-backend/cmd"

func main() {
	cmd.Run()
}
