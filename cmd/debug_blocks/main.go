package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"

	"seedfix/core/config"
	"seedfix/core/gateway"
	"seedfix/core/reconcile"
)

// debug_blocks prints how the configured markers split a seed document.
func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	spec, err := cfg.Seed.Spec()
	if err != nil {
		log.Fatal(err)
	}

	name := cfg.Seed.Document
	if len(os.Args) > 1 {
		name = os.Args[1]
	}

	gw := gateway.NewFileGateway(cfg.Gateway.Root, false)
	doc, err := gw.Load(context.Background(), name)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Document %s: %d bytes\n", name, len(doc))

	for _, bs := range []reconcile.BlockSpec{spec.Parent, spec.Child} {
		fmt.Printf("\n=== %s ===\n", bs.Label)
		block, err := reconcile.LocateBlock(doc, bs.Markers)
		if err != nil {
			fmt.Println("NOT FOUND:", err)
			continue
		}
		fmt.Printf("Span: [%d, %d)\n", block.Start, block.End)

		tuples := slices.Collect(reconcile.Tuples(block.Text))
		fmt.Printf("Tuples: %d\n", len(tuples))
		for i, tuple := range tuples {
			key := "<short>"
			if bs.KeyColumn < len(tuple) {
				key = tuple[bs.KeyColumn]
			}
			fmt.Printf("  #%d fields=%d key=%s canonical=%v\n", i, len(tuple), key, reconcile.IsCanonicalID(key))
		}
	}

	fmt.Println("\n=== Placeholders ===")
	for _, p := range spec.Placeholders {
		fmt.Printf("  %s: %d occurrence(s)\n", p, reconcile.CountOccurrences(doc, p))
	}
}
