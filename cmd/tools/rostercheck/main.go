// rostercheck fetches the configured roster source and validates every
// record, printing a per-record report. It exits non-zero when any record
// fails validation so it can gate deploys of the data file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/phigamnu/sistergreet/internal/config"
	"github.com/phigamnu/sistergreet/internal/model/sister"
	"github.com/phigamnu/sistergreet/internal/service/imageprobe"
	"github.com/phigamnu/sistergreet/internal/service/roster"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] could not load .env, using system environment: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	dataURL := flag.String("url", "", "roster URL (defaults to SISTERS_DATA_URL)")
	probeImages := flag.Bool("probe", false, "also probe image URLs for reachability")
	timeout := flag.Duration("timeout", 45*time.Second, "overall deadline")
	flag.Parse()

	url := *dataURL
	if url == "" {
		url = cfg.Roster.DataURL
	}
	if url == "" {
		flag.Usage()
		log.Fatal("no roster URL: pass -url or set SISTERS_DATA_URL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	source := roster.NewHTTPSource(url, cfg.Roster.FetchTimeout)
	items, err := source.Load(ctx)
	if err != nil {
		log.Fatalf("load roster: %v", err)
	}

	log.Printf("loaded %d records from %s", len(items), url)

	var prober *imageprobe.Prober
	if *probeImages {
		prober = imageprobe.New(cfg.Probe.Timeout)
	}

	invalid := 0
	for i, item := range items {
		result := sister.Validate(item)
		if !result.Valid {
			invalid++
			fmt.Printf("record %d (%q): INVALID\n", i+1, item.Name)
			for _, msg := range result.Errors {
				fmt.Printf("  - %s\n", msg)
			}
			continue
		}

		line := fmt.Sprintf("record %d (%q): ok", i+1, item.Name)
		if prober != nil {
			for _, image := range item.Images {
				if image != "" && !prober.Usable(ctx, image) {
					line += fmt.Sprintf("\n  - unreachable image: %s", image)
				}
			}
		}
		fmt.Println(line)
	}

	if invalid > 0 {
		log.Printf("%d of %d records invalid", invalid, len(items))
		os.Exit(1)
	}
	log.Printf("all %d records valid", len(items))
}
