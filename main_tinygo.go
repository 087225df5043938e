//go:build tinygo

package main

import (
	"triplex/app"
	"triplex/hal"
)

func main() {
	app.Run(hal.New())
}
