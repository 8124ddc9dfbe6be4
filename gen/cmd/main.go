package main

import (
	"flag"
	"log"
	"os"

	"cheapest/gen"
)

var (
	output string
	cfg    = gen.DefaultConfig()
)

func init() {
	flag.StringVar(&output, "output", "input.txt", "file to write")
	flag.IntVar(&cfg.Rows, "rows", cfg.Rows, "number of records")
	flag.IntVar(&cfg.Cities, "cities", cfg.Cities, "number of distinct cities")
	flag.IntVar(&cfg.Products, "products", cfg.Products, "number of distinct products")
	flag.Int64Var(&cfg.MaxPrice, "maxPrice", cfg.MaxPrice, "largest price, in hundredths")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed")
	flag.BoolVar(&cfg.CRLF, "crlf", cfg.CRLF, "terminate records with \\r\\n")
	flag.Parse()
}

func main() {
	f, err := os.Create(output)
	if err != nil {
		log.Fatalf("unable to create output: %v", err)
	}
	defer f.Close()

	if err := gen.Write(f, cfg); err != nil {
		log.Fatal(err)
	}
}
