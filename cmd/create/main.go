package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anrid/world-population/pkg/logger"
	"github.com/anrid/world-population/pkg/stats"
)

func main() {
	source := flag.String("url", "", "path or URL of a population CSV, XLSX or XLS file")
	out := flag.String("out", "WorldPopulation.csv", "where to write the CSV copy")
	force := flag.Bool("force", false, "download again even if -out exists")
	flag.Parse()

	if !*force {
		ds, found, err := stats.LoadIfExists(*out)
		if err != nil {
			logger.Errorf("existing copy %s is unusable: %v (use -force to replace it)", *out, err)
			os.Exit(1)
		}
		if found {
			fmt.Println(ds.Info())
			return
		}
	}

	if *source == "" {
		logger.Errorf("-url is required when %s does not exist", *out)
		os.Exit(1)
	}

	ds, err := stats.Load(*source)
	if err != nil {
		logger.Errorf("error loading data: %v", err)
		os.Exit(1)
	}
	if err := ds.Save(*out); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	logger.Infof("Saved %d rows to %s", ds.Len(), *out)
	fmt.Println(ds.Info())
}
