package main

import (
	"mergington.dev/activities/cmd/app"
)

// @title          Mergington High School Activities API
// @version        1.0.0
// @description    Lists extracurricular activities and lets students sign up or unregister by email.
// @BasePath       /
func main() {
	app.Run()
}
