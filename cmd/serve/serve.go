package serve

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/google/subcommands"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Rumi1013/filewizard/api"
	"github.com/Rumi1013/filewizard/assess"
	"github.com/Rumi1013/filewizard/db"
	"github.com/Rumi1013/filewizard/organizer"
	"github.com/Rumi1013/filewizard/paths"
	"github.com/Rumi1013/filewizard/report"
	"github.com/Rumi1013/filewizard/rules"
	"github.com/Rumi1013/filewizard/scanner"
	"github.com/Rumi1013/filewizard/tags"
)

type Command struct {
	dbPath    string
	port      string
	rulesPath string
	maxDepth  int
}

func (*Command) Name() string     { return "serve" }
func (*Command) Synopsis() string { return "Start HTTP server exposing the organization engine" }
func (*Command) Usage() string {
	return `serve -db <database> [-port <port>] [-rules <rules.yaml>] [-depth <n>]:
  Start an HTTP server that provides REST API access to directory scanning,
  file assessment, daily reports, and batch tagging.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbPath, "db", "", "database file path (required)")
	f.StringVar(&c.port, "port", "8080", "port to listen on")
	f.StringVar(&c.rulesPath, "rules", "", "organization rules YAML file (optional)")
	f.IntVar(&c.maxDepth, "depth", scanner.DefaultMaxDepth, "maximum scan depth")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dbPath == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	// Set up database connection
	database, err := db.SetupDatabase(c.dbPath)
	if err != nil {
		log.Printf("Failed to setup database: %v", err)
		return subcommands.ExitFailure
	}
	defer database.Close()

	ruleSet := rules.Default()
	if c.rulesPath != "" {
		ruleSet, err = rules.Load(c.rulesPath)
		if err != nil {
			log.Printf("Failed to load rules: %v", err)
			return subcommands.ExitFailure
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Failed to resolve home directory: %v", err)
		return subcommands.ExitFailure
	}

	resolver := paths.NewResolver(home)
	assessmentStore := db.NewAssessmentStore(database)
	tagStore := db.NewTagStore(database)

	h := api.NewHandler(api.Deps{
		Scanner:     scanner.New(resolver, scanner.WithMaxDepth(c.maxDepth)),
		Organizer:   organizer.New(assess.NewAssessor(nil), rules.NewEngine(ruleSet)),
		Aggregator:  report.NewAggregator(assessmentStore),
		Applier:     tags.NewApplier(tagStore),
		Recommender: tags.ExtensionRecommender{},
		Assessments: assessmentStore,
		Changes:     db.NewChangeStore(database),
		Reports:     db.NewReportStore(database),
		TagStore:    tagStore,
	})

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Routes
	e.GET("/api/scan", h.ScanDirectory)
	e.POST("/api/scan/batch", h.ScanBatch)
	e.POST("/api/assess", h.AssessFile)
	e.POST("/api/organize", h.ApplyOrganization)
	e.GET("/api/report/daily", h.GetDailyReport)
	e.GET("/api/report/:date", h.GetStoredReport)
	e.GET("/api/changes", h.ListChanges)
	e.POST("/api/tags/batch", h.ApplyBatchTags)
	e.POST("/api/tags/recommend", h.RecommendTags)
	e.GET("/api/tags", h.ListTags)
	e.GET("/api/assessments", h.ListAssessments)

	// Start server
	log.Printf("Starting server on port %s...", c.port)
	if err := e.Start(":" + c.port); err != nil && err != http.ErrServerClosed {
		log.Printf("Failed to start server: %v", err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
