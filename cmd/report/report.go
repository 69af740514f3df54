package report

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/Rumi1013/filewizard/db"
	"github.com/Rumi1013/filewizard/report"
)

type Command struct {
	dbPath string
	date   string
}

func (*Command) Name() string     { return "report" }
func (*Command) Synopsis() string { return "Generate a daily organization report" }
func (*Command) Usage() string {
	return `report -db <database> [-date <YYYY-MM-DD>]:
  Aggregate the day's file assessments into a daily report, store it, and
  print it as JSON. Defaults to today.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbPath, "db", "", "database file path (required)")
	f.StringVar(&c.date, "date", "", "report date, YYYY-MM-DD (default today)")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dbPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	date := time.Now().UTC()
	if c.date != "" {
		parsed, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			log.Printf("Invalid date %q, expected YYYY-MM-DD", c.date)
			return subcommands.ExitUsageError
		}
		date = parsed
	}

	database, err := db.SetupDatabase(c.dbPath)
	if err != nil {
		log.Printf("Failed to setup database: %v", err)
		return subcommands.ExitFailure
	}
	defer database.Close()

	aggregator := report.NewAggregator(db.NewAssessmentStore(database))
	dailyReport, err := aggregator.Generate(ctx, date)
	if err != nil {
		log.Printf("Failed to generate report: %v", err)
		return subcommands.ExitFailure
	}

	if err := db.NewReportStore(database).Save(ctx, dailyReport); err != nil {
		log.Printf("Failed to save report: %v", err)
		return subcommands.ExitFailure
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(dailyReport); err != nil {
		log.Printf("Failed to encode report: %v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
