// Command leadcsv moves the lead ledger between MongoDB and the CSV layout
// (Nome,Email,Telefone,Referencia,Data_Cadastro).
//
//	leadcsv --export leads.csv
//	leadcsv --import leads.csv
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slog"

	"github.com/devpaiola/cadastroLead/internal/config"
	"github.com/devpaiola/cadastroLead/internal/models"
	"github.com/devpaiola/cadastroLead/internal/repositories"
	mongorepo "github.com/devpaiola/cadastroLead/internal/repositories/mongodb"
	"github.com/devpaiola/cadastroLead/internal/utils"
	"github.com/devpaiola/cadastroLead/pkg/mongodb"
)

func main() {
	var (
		exportPath string
		importPath string
		reference  string
		dryRun     bool
	)
	pflag.StringVar(&exportPath, "export", "", "write the ledger to this CSV file (- for stdout)")
	pflag.StringVar(&importPath, "import", "", "load leads from this CSV file into the ledger")
	pflag.StringVar(&reference, "referencia", "", "export only rows with this reference")
	pflag.BoolVar(&dryRun, "dry-run", false, "parse the import file without writing")
	pflag.Parse()

	if (exportPath == "") == (importPath == "") {
		fmt.Fprintln(os.Stderr, "exactly one of --export or --import is required")
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if importPath != "" && dryRun {
		if err := importLeads(ctx, nil, importPath); err != nil {
			logger.Error("Import failed", "error", err)
			os.Exit(1)
		}
		return
	}

	client, err := mongodb.Connect(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())
	repo := mongorepo.NewLeadRepository(client.Database())

	if exportPath != "" {
		err = exportLeads(ctx, repo, exportPath, reference)
	} else {
		err = importLeads(ctx, repo, importPath)
	}
	if err != nil {
		logger.Error("Lead CSV transfer failed", "error", err)
		os.Exit(1)
	}
}

func exportLeads(ctx context.Context, repo repositories.LeadRepository, path, reference string) error {
	var (
		leads []*models.Lead
		err   error
	)
	if reference != "" {
		leads, err = repo.FindByReference(ctx, reference)
	} else {
		leads, err = repo.FindAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	var out io.Writer = os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}
	if err := utils.WriteLeadsCSV(out, leads); err != nil {
		return err
	}
	slog.Info("Leads exported", "count", len(leads), "file", path)
	return nil
}

// importLeads loads path into repo. A nil repo only parses the file.
func importLeads(ctx context.Context, repo repositories.LeadRepository, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	res, err := utils.ReadLeadsCSV(f, time.Local)
	if err != nil {
		return err
	}
	for _, skipped := range res.Skipped {
		slog.Warn("Skipping row", "reason", skipped)
	}
	if len(res.Leads) == 0 {
		return errors.New("no valid rows in CSV file")
	}
	if repo == nil {
		slog.Info("Dry run", "valid", len(res.Leads), "skipped", len(res.Skipped))
		return nil
	}
	if err := repo.CreateMany(ctx, res.Leads); err != nil {
		return fmt.Errorf("failed to store leads: %w", err)
	}
	slog.Info("Leads imported", "count", len(res.Leads), "skipped", len(res.Skipped))
	return nil
}
