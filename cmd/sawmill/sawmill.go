package main

import "github.com/Egor213/Sawmill/internal/app"

func main() {
	app.Run()
}
