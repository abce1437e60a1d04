package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/soltixdb/colstats/internal/catalog"
	"github.com/soltixdb/colstats/internal/config"
	"github.com/soltixdb/colstats/internal/logging"
	"github.com/soltixdb/colstats/internal/statistics"
)

func main() {
	file := flag.String("file", "", "Parquet file to inspect")
	column := flag.String("column", "", "Dotted column path to show (optional)")
	format := flag.String("format", "table", "Output format (table, json)")
	padding := flag.String("padding", "", "Decimal padding (zero, sign); defaults to statistics.decimal_padding")
	workers := flag.Int("workers", 0, "Parallel column chunk reconstructions; defaults to catalog.workers")
	configPath := flag.String("config", "", "Optional configuration file for catalog and statistics defaults")
	verbose := flag.Bool("verbose", false, "Log debug output to stderr")

	flag.Parse()

	if *file == "" {
		log.Fatal("Error: -file parameter is required")
	}
	if *format != "table" && *format != "json" {
		log.Fatalf("Error: invalid format '%s'. Expected table or json\n", *format)
	}

	cfg := config.LoadOrDefault(*configPath)
	if *padding == "" {
		*padding = cfg.Statistics.DecimalPadding
	}
	if *workers > 0 {
		cfg.Catalog.Workers = *workers
	}

	mode, err := statistics.ParsePadding(*padding)
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := logging.NewWithWriter(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}, level)
	logging.SetGlobal(logger)

	cat, err := catalog.New(cfg.Catalog, statistics.Options{Padding: mode}, logger)
	if err != nil {
		log.Fatalf("Error creating catalog: %v\n", err)
	}
	defer func() { _ = cat.Close() }()

	fs, err := cat.Collect(context.Background(), *file)
	if err != nil {
		log.Fatalf("Error reading statistics: %v\n", err)
	}

	entries := fs.Columns
	if *column != "" {
		entries = fs.Column(*column)
		if len(entries) == 0 {
			log.Fatalf("Error: no fixed len byte array column '%s' in %s\n", *column, *file)
		}
	}

	switch *format {
	case "json":
		err = writeJSON(os.Stdout, fs, entries)
	default:
		fmt.Printf("%s: %d rows, %d row groups, %d fixed len chunks (%d failed)\n",
			fs.Path, fs.NumRows, fs.RowGroups, len(fs.Columns), fs.Failed())
		writeTable(os.Stdout, entries)
	}
	if err != nil {
		log.Fatalf("Error writing output: %v\n", err)
	}
}

func writeJSON(w io.Writer, fs *catalog.FileStatistics, entries []catalog.Entry) error {
	out := *fs
	out.Columns = entries
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTable(w io.Writer, entries []catalog.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Row Group", "Column", "Type", "Values", "Nulls", "Distinct", "Min", "Max", "Error"})
	table.SetAutoWrapText(false)

	for i := range entries {
		table.Append(row(&entries[i]))
	}
	table.Render()
}

func row(e *catalog.Entry) []string {
	r := []string{
		strconv.Itoa(e.RowGroup),
		e.ColumnPath(),
		e.DataType.String(),
		strconv.FormatInt(e.NumValues, 10),
		"", "", "", "", "",
	}
	if e.Summary != nil {
		r[4] = optInt(e.Summary.NullCount)
		r[5] = optInt(e.Summary.DistinctCount)
		r[6] = optString(e.Summary.Min)
		r[7] = optString(e.Summary.Max)
	}
	if e.Error != "" {
		r[8] = e.ErrorKind + ": " + e.Error
	}
	return r
}

func optInt(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func optString(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}
