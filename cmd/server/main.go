// Command server loads a GraphStore artifact and answers routing queries
// over a minimal HTTP interface. It is intentionally thin: the HTTP
// surface itself is out of scope for this package, only enough exists
// here to exercise the Query library function end to end.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"elevroute"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	addr := fs.String("addr", ":8080", "address to bind")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: server [flags] <graph.fmi>")
		return 1
	}

	store, err := elevroute.DeserializeGraphStore(fs.Arg(0))
	if err != nil {
		log.Printf("server: %v", err)
		if elevroute.IsMalformed(err) {
			return 2
		}
		return 1
	}
	log.Printf("server: loaded %d nodes, %d edges", len(store.Nodes), len(store.Edges))

	mux := http.NewServeMux()
	mux.HandleFunc("/route", routeHandler(&store))

	log.Printf("server: listening on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Printf("server: %v", err)
		return 1
	}
	return 0
}

type routeRequest struct {
	FromLat, FromLon float64
	ToLat, ToLon     float64
	Mode             string
	UseDistance      bool
	MaxRiseM         float64
	AllPaths         bool
}

func parseMode(s string) (elevroute.Mode, error) {
	switch s {
	case "car", "":
		return elevroute.ModeCar, nil
	case "bike":
		return elevroute.ModeBike, nil
	case "foot":
		return elevroute.ModeFoot, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

func routeHandler(store *elevroute.GraphStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req routeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode, err := parseMode(req.Mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result, err := elevroute.Query(store, elevroute.QueryRequest{
			FromLat: req.FromLat, FromLon: req.FromLon,
			ToLat: req.ToLat, ToLon: req.ToLon,
			Mode: mode, UseDistance: req.UseDistance,
			MaxRise: req.MaxRiseM, AllPaths: req.AllPaths,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}
