package scan

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/Rumi1013/filewizard/app"
	"github.com/Rumi1013/filewizard/assess"
	"github.com/Rumi1013/filewizard/db"
	"github.com/Rumi1013/filewizard/models"
	"github.com/Rumi1013/filewizard/organizer"
	"github.com/Rumi1013/filewizard/paths"
	"github.com/Rumi1013/filewizard/report"
	"github.com/Rumi1013/filewizard/rules"
	"github.com/Rumi1013/filewizard/scanner"
)

type Command struct {
	dbPath    string
	roots     string
	rulesPath string
	maxDepth  int
}

func (*Command) Name() string     { return "scan" }
func (*Command) Synopsis() string { return "Scan directories, assess files, and store assessments" }
func (*Command) Usage() string {
	return `scan -db <database> -roots <dir[,dir...]> [-rules <rules.yaml>] [-depth <n>]:
  Scan directories recursively, score every assessable file against the
  organization rules, and store the assessments in the SQLite database.
`
}

func (c *Command) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dbPath, "db", "", "database file path (required)")
	f.StringVar(&c.roots, "roots", "", "comma-separated directories to scan (required)")
	f.StringVar(&c.rulesPath, "rules", "", "organization rules YAML file (optional)")
	f.IntVar(&c.maxDepth, "depth", scanner.DefaultMaxDepth, "maximum scan depth")
}

func (c *Command) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.dbPath == "" || c.roots == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	appCtx := app.NewAppContext(ctx)
	defer appCtx.PerformCleanup()

	setupSignalHandling(appCtx)

	// Set up database connection
	database, err := db.SetupDatabase(c.dbPath)
	if err != nil {
		log.Fatalf("Failed to setup database: %v", err)
	}
	appCtx.DB = database

	ruleSet := rules.Default()
	if c.rulesPath != "" {
		ruleSet, err = rules.Load(c.rulesPath)
		if err != nil {
			log.Fatalf("Failed to load rules: %v", err)
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to resolve home directory: %v", err)
	}
	resolver := paths.NewResolver(home)
	scan := scanner.New(resolver, scanner.WithMaxDepth(c.maxDepth))
	org := organizer.New(assess.NewAssessor(nil), rules.NewEngine(ruleSet))
	changes := db.NewChangeStore(database)

	// Start transaction for assessment inserts
	tx, err := appCtx.DB.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	appCtx.Tx = tx

	// Assessment processing channel setup
	assessmentChan := make(chan *models.FileAssessment, 100)
	appCtx.AssessmentChan = assessmentChan

	// Database write goroutine
	appCtx.Wg.Add(1)
	go func() {
		defer appCtx.Wg.Done()

		stmt, err := appCtx.Tx.Prepare(`
			INSERT INTO assessments (
				id, file_path, file_type, quality_score,
				monetization_eligible, needs_deletion, metrics_json,
				last_modified, size_bytes, assessment_date
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			log.Printf("Failed to prepare statement: %v", err)
			appCtx.Cancel()
			return
		}
		appCtx.Stmt = stmt
		defer stmt.Close()

		for assessment := range assessmentChan {
			select {
			case <-appCtx.Context.Done():
				return
			default:
				metricsJSON, err := json.Marshal(assessment.Metadata)
				if err != nil {
					log.Printf("Error encoding metrics for %s: %v", assessment.FilePath, err)
					continue
				}
				_, err = stmt.Exec(
					uuid.NewString(),
					assessment.FilePath,
					assessment.FileType,
					string(assessment.QualityScore),
					assessment.MonetizationEligible,
					assessment.NeedsDeletion,
					string(metricsJSON),
					assessment.LastModified.Unix(),
					assessment.SizeBytes,
					assessment.AssessmentDate.Unix(),
				)
				if err != nil {
					log.Printf("Error inserting assessment for %s: %v", assessment.FilePath, err)
				}
				atomic.AddInt64(&appCtx.Stats.ProcessedBytes, assessment.SizeBytes)
				atomic.AddInt64(&appCtx.Stats.AssessedFiles, 1)
			}
		}
	}()

	// Scan roots as an independent batch, then walk the trees.
	roots := strings.Split(c.roots, ",")
	batch := scan.ScanMultiple(appCtx.Context, roots)
	for _, skipped := range batch.Skipped {
		log.Printf("Skipping %s: %s", skipped.Path, skipped.Reason)
	}

	walker := &treeWalker{appCtx: appCtx, org: org, out: assessmentChan}
	for _, root := range batch.Order {
		if appCtx.Context.Err() != nil {
			break
		}
		walker.walk(batch.Results[root])
	}

	if !appCtx.ChannelClosed {
		close(appCtx.AssessmentChan)
		appCtx.ChannelClosed = true
	}
	appCtx.Wg.Wait()

	// Final commit
	if err := appCtx.Tx.Commit(); err != nil {
		log.Fatalf("Failed to commit final transaction: %v", err)
	}
	appCtx.Tx = nil

	// Record organization changes outside the bulk transaction so the
	// change log matches what the daily report will say.
	for _, change := range walker.changes {
		if err := changes.Record(appCtx.Context, change.Path, change.Action); err != nil {
			log.Printf("Warning: failed to record change for %s: %v", change.Path, err)
		}
	}

	// Log final statistics
	elapsed := time.Since(appCtx.Stats.StartTime)
	processedFiles := atomic.LoadInt64(&appCtx.Stats.ProcessedFiles)
	assessedFiles := atomic.LoadInt64(&appCtx.Stats.AssessedFiles)
	processedBytes := atomic.LoadInt64(&appCtx.Stats.ProcessedBytes)

	log.Printf("Scan completed in %v", elapsed)
	log.Printf("Visited %d files, assessed %d (%.2f GB)",
		processedFiles,
		assessedFiles,
		float64(processedBytes)/(1024*1024*1024),
	)

	return subcommands.ExitSuccess
}

// treeWalker walks scan results depth-first, pushing an assessment for
// every regular file and collecting the matching organization-change
// entries. Assessment failures are logged and skipped; they never abort
// the tree.
type treeWalker struct {
	appCtx  *app.AppContext
	org     *organizer.Organizer
	out     chan<- *models.FileAssessment
	changes []models.OrganizationChange
}

func (w *treeWalker) walk(entry *models.DirectoryEntry) {
	if entry == nil || entry.Restricted || entry.CycleDetected || entry.Type == models.EntryError {
		return
	}

	if entry.Type == models.EntryFile {
		atomic.AddInt64(&w.appCtx.Stats.ProcessedFiles, 1)
		assessment, err := w.org.AssessFile(entry.Path)
		if err != nil {
			log.Printf("Warning: failed to assess %s: %v", entry.Path, err)
			return
		}

		action := report.ActionAssessed
		if assessment.NeedsDeletion {
			action = report.ActionMarkedDeletion
		}
		w.changes = append(w.changes, models.OrganizationChange{Path: entry.Path, Action: action})

		select {
		case <-w.appCtx.Context.Done():
		case w.out <- assessment:
		}
		return
	}

	for _, child := range entry.Children {
		if w.appCtx.Context.Err() != nil {
			return
		}
		w.walk(child)
	}
}

func setupSignalHandling(app *app.AppContext) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Force quit flag
	var forceQuit atomic.Bool

	go func() {
		for sig := range sigChan {
			log.Printf("Received signal: %v", sig)
			if forceQuit.Load() {
				log.Println("Forcing immediate shutdown...")
				os.Exit(1)
			}

			forceQuit.Store(true)
			log.Println("Press Ctrl+C again to force quit. Wait for normal shutdown to complete...")
			app.Cancel() // Cancel context to notify goroutines

			// Reset forceQuit flag after 5 seconds
			go func() {
				time.Sleep(5 * time.Second)
				forceQuit.Store(false)
			}()
		}
	}()
}
