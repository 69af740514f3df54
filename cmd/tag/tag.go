package tag

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/google/subcommands"

	"github.com/Rumi1013/filewizard/db"
	"github.com/Rumi1013/filewizard/tags"
)

type Command struct {
	dbPath    string
	inputPath string
	recommend string
	workers   int
}

func (*Command) Name() string     { return "tag" }
func (*Command) Synopsis() string { return "Apply or generate tag recommendations in batch" }
func (*Command) Usage() string {
	return `tag -db <database> [-input <items.json>] [-recommend <paths.json>] [-workers <n>]:
  With -input, apply a JSON file of {file_path, recommendations} items to
  the tag store. With -recommend, generate recommendations for a JSON list
  of file paths and print them as JSON.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbPath, "db", "", "database file path (required with -input)")
	f.StringVar(&c.inputPath, "input", "", "JSON file of batch items to apply")
	f.StringVar(&c.recommend, "recommend", "", "JSON file listing paths to recommend tags for")
	f.IntVar(&c.workers, "workers", tags.DefaultRecommendWorkers, "recommender worker limit")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	switch {
	case c.inputPath != "":
		return c.applyBatch(ctx)
	case c.recommend != "":
		return c.recommendBatch(ctx)
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}
}

func (c *Command) applyBatch(ctx context.Context) subcommands.ExitStatus {
	if c.dbPath == "" {
		log.Println("-db is required with -input")
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(c.inputPath)
	if err != nil {
		log.Printf("Failed to read input file: %v", err)
		return subcommands.ExitFailure
	}

	var items []tags.BatchItem
	if err := json.Unmarshal(data, &items); err != nil {
		log.Printf("Failed to parse input file: %v", err)
		return subcommands.ExitFailure
	}

	database, err := db.SetupDatabase(c.dbPath)
	if err != nil {
		log.Printf("Failed to setup database: %v", err)
		return subcommands.ExitFailure
	}
	defer database.Close()

	applier := tags.NewApplier(db.NewTagStore(database))
	results, err := applier.ApplyBatch(ctx, items)
	if err != nil {
		log.Printf("Warning: some recommendations failed: %v", err)
	}

	return printJSON(results)
}

func (c *Command) recommendBatch(ctx context.Context) subcommands.ExitStatus {
	data, err := os.ReadFile(c.recommend)
	if err != nil {
		log.Printf("Failed to read paths file: %v", err)
		return subcommands.ExitFailure
	}

	var filePaths []string
	if err := json.Unmarshal(data, &filePaths); err != nil {
		log.Printf("Failed to parse paths file: %v", err)
		return subcommands.ExitFailure
	}

	results := tags.BatchRecommend(ctx, tags.ExtensionRecommender{}, filePaths, c.workers)
	return printJSON(results)
}

func printJSON(v interface{}) subcommands.ExitStatus {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Printf("Failed to encode output: %v", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
