// Command slabfit-report loads a bucket configuration from a TOML file,
// drives a small scripted sequence of allocations against it, and prints
// the resulting free-list and statistics report. It exists to exercise the
// slabfit library end-to-end; the library itself takes no file or CLI
// dependency.
package main

import (
	"fmt"
	"log"
	"os"
	"unsafe"

	"github.com/urfave/cli/v2"

	"github.com/slabfit/slabfit"
)

func main() {
	app := &cli.App{
		Name:  "slabfit-report",
		Usage: "drive a slabfit allocator from a TOML bucket config and print its report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "examples/buckets.toml",
				Usage:   "path to a TOML bucket configuration",
			},
			&cli.StringFlag{
				Name:  "label",
				Value: "demo",
				Usage: "label recorded in the printed report",
			},
			&cli.IntFlag{
				Name:  "allocations",
				Value: 64,
				Usage: "number of demo allocations to make before freeing half and reporting",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}

	alloc, err := slabfit.New(cfg)
	if err != nil {
		return fmt.Errorf("construct allocator: %w", err)
	}

	n := c.Int("allocations")
	ptrs := make([]unsafe.Pointer, 0, n)
	for i := 0; i < n; i++ {
		// Vary the request size across a few size classes to populate
		// more than one bucket's free list in the printed report.
		length := uintptr(8 << (i % 7))
		p, err := alloc.Alloc(length, 1)
		if err != nil {
			return fmt.Errorf("alloc #%d: %w", i, err)
		}
		ptrs = append(ptrs, p)
	}

	for i := 0; i < len(ptrs); i += 2 {
		length := uintptr(8 << (i % 7))
		alloc.Free(ptrs[i], length, 1)
	}

	return alloc.WriteReport(os.Stdout, c.String("label"))
}
