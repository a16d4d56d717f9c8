// Command preprocess builds an elevroute GraphStore artifact from an OSM
// PBF extract. It takes one positional argument, the PBF path, and writes
// <input>.fmi beside it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"elevroute"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("preprocess", flag.ContinueOnError)
	srtmCache := fs.String("srtm-cache", "", "directory to cache downloaded SRTM tiles in")
	srtmBaseURL := fs.String("srtm-base-url", "", "override the SRTM tile download base URL")
	noElevation := fs.Bool("no-elevation", false, "skip SRTM elevation resolution entirely")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: preprocess [flags] <input.pbf>")
		return 1
	}
	pbfPath := fs.Arg(0)

	if _, err := os.Stat(pbfPath); err != nil {
		log.Printf("preprocess: %v", err)
		return 1
	}

	var srtm *elevroute.SrtmTileStore
	if !*noElevation {
		srtm = elevroute.NewSrtmTileStore(*srtmCache, *srtmBaseURL)
	}

	store, err := elevroute.IngestPBF(context.Background(), pbfPath, srtm)
	if err != nil {
		log.Printf("preprocess: %v", err)
		if elevroute.IsMalformed(err) {
			return 2
		}
		return 1
	}

	if err := store.ValidateInvariants(); err != nil {
		log.Printf("preprocess: built graph failed invariant check: %v", err)
		return 2
	}

	outPath := strings.TrimSuffix(pbfPath, ".osm.pbf")
	outPath = strings.TrimSuffix(outPath, ".pbf") + ".fmi"
	if err := store.Serialize(outPath); err != nil {
		log.Printf("preprocess: writing %s: %v", outPath, err)
		return 1
	}

	log.Printf("preprocess: wrote %s (%d nodes, %d edges)", outPath, len(store.Nodes), len(store.Edges))
	return 0
}
