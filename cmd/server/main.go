package main

import "gradevision/internal/app"

func main() {
	app.Run()
}
