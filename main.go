// automap renders a scrolling, zooming overhead map of a level in the
// terminal. Run it locally with:
//
//	go run .
//
// or serve it over SSH with cmd/server.
package main

import (
	"log"

	"automap/internal/game"
)

func main() {
	g, err := game.New()
	if err != nil {
		log.Fatal(err)
	}
	g.Run()
}
