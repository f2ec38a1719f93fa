//go:build tinygo && baremetal

package main

import (
	"tower/app"
	"tower/hal"
)

func main() {
	app.Run(hal.New())
}
