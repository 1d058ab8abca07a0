// chessd serves chess games over HTTP: create a game, query its state and
// legal moves, play SAN moves, claim draws, and fetch PGN or an SVG
// diagram. A per-game WebSocket feed broadcasts every applied move.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	app := NewApplication()

	server := &http.Server{
		Addr:         *addr,
		Handler:      handlers.CORS()(handlers.LoggingHandler(os.Stdout, app.Router())),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	fmt.Printf("chessd listening on %s\n", *addr)
	log.Fatal(server.ListenAndServe())
}
