package main

import "juaconnect_backend/internal/app"

func main() {
	app.Run()
}
