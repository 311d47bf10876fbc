package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"residual-hub.backend/internal/config"
	"residual-hub.backend/internal/domain/entities"
	"residual-hub.backend/internal/infrastructure/repositories"
	"residual-hub.backend/internal/usecases"
	"residual-hub.backend/pkg/tabular"
)

var openImporterDB = func(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{DSN: dsn, PreferSimpleProtocol: true}), &gorm.Config{PrepareStmt: false})
}

var openImporterSQLDB = func(db *gorm.DB) (io.Closer, error) {
	return db.DB()
}

type importerRuntime interface {
	Upload(ctx context.Context, input usecases.UploadInput) (*usecases.UploadResult, error)
	ResolveMonth(ctx context.Context, month, merchantIDFilter string) ([]entities.AssignmentUpsert, error)
}

type importerDeps struct {
	loadEnv  func() error
	loadCfg  func() *config.Config
	prepare  func(cfg *config.Config) (importerRuntime, io.Closer, error)
	openFile func(path string) (io.ReadCloser, error)
	out      io.Writer
}

type importerRuntimeImpl struct {
	uploadCase     *usecases.UploadUsecase
	assignmentCase *usecases.AssignmentUsecase
}

func (r importerRuntimeImpl) Upload(ctx context.Context, input usecases.UploadInput) (*usecases.UploadResult, error) {
	return r.uploadCase.Upload(ctx, input)
}

func (r importerRuntimeImpl) ResolveMonth(ctx context.Context, month, merchantIDFilter string) ([]entities.AssignmentUpsert, error) {
	return r.assignmentCase.ResolveMonth(ctx, month, merchantIDFilter)
}

func defaultImporterDeps() importerDeps {
	return importerDeps{
		loadEnv: func() error { return godotenv.Load() },
		loadCfg: config.Load,
		prepare: func(cfg *config.Config) (importerRuntime, io.Closer, error) {
			db, err := openImporterDB(cfg.Database.URL())
			if err != nil {
				return nil, nil, fmt.Errorf("failed to connect db: %w", err)
			}

			sqlDB, err := openImporterSQLDB(db)
			if err != nil {
				return nil, nil, fmt.Errorf("failed to init sql db: %w", err)
			}

			rules, err := usecases.LoadRuleConfig(
				cfg.Pipeline.HighRevenueThreshold,
				cfg.Pipeline.FlaggedProcessor,
				cfg.Pipeline.CoOwnerIndicator,
			)
			if err != nil {
				return nil, nil, err
			}

			merchantRepo := repositories.NewMerchantRepository(db)
			recordRepo := repositories.NewProcessorRecordRepository(db)
			roleRepo := repositories.NewRoleRepository(db)
			assignmentRepo := repositories.NewAssignmentRepository(db)
			uow := repositories.NewUnitOfWork(db)

			return importerRuntimeImpl{
				uploadCase:     usecases.NewUploadUsecase(recordRepo, merchantRepo, uow),
				assignmentCase: usecases.NewAssignmentUsecase(recordRepo, roleRepo, assignmentRepo, uow, rules),
			}, sqlDB, nil
		},
		openFile: func(path string) (io.ReadCloser, error) { return os.Open(path) },
		out:      os.Stdout,
	}
}

func runImporter(args []string, deps importerDeps) error {
	if deps.loadEnv == nil {
		deps.loadEnv = func() error { return godotenv.Load() }
	}
	if deps.loadCfg == nil {
		deps.loadCfg = config.Load
	}
	if deps.prepare == nil {
		def := defaultImporterDeps()
		deps.prepare = def.prepare
	}
	if deps.openFile == nil {
		deps.openFile = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	}
	if deps.out == nil {
		deps.out = os.Stdout
	}

	fs := flag.NewFlagSet("importer", flag.ContinueOnError)
	fileFlag := fs.String("file", "", "processor export file, .csv or .xlsx (required)")
	processorFlag := fs.String("processor", "", "processor name (required)")
	monthFlag := fs.String("month", "", "statement month YYYY-MM (required)")
	forceFlag := fs.Bool("force", false, "persist even when validation reports errors")
	resolveFlag := fs.Bool("resolve", false, "resolve assignments after a successful upload")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *fileFlag == "" || *processorFlag == "" || *monthFlag == "" {
		return fmt.Errorf("--file, --processor and --month are required")
	}

	if err := deps.loadEnv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := deps.loadCfg()

	f, err := deps.openFile(*fileFlag)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", *fileFlag, err)
	}
	defer f.Close()

	rows, err := tabular.Parse(f, filepath.Base(*fileFlag))
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", *fileFlag, err)
	}

	runtime, closer, err := deps.prepare(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()
	result, err := runtime.Upload(ctx, usecases.UploadInput{
		ProcessorName: *processorFlag,
		Month:         *monthFlag,
		Rows:          rows,
		Force:         *forceFlag,
	})
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	_, _ = fmt.Fprintf(deps.out, "processor=%s month=%s rows=%d\n", *processorFlag, *monthFlag, len(rows))
	_, _ = fmt.Fprintf(deps.out, "accepted=%t persisted=%d errorRows=%d warningRows=%d\n",
		result.Accepted, result.PersistedCount,
		result.Validation.Summary.ErrorRows, result.Validation.Summary.WarningRows)

	if !result.Accepted {
		return fmt.Errorf("upload rejected with %d error rows (use --force to override)", result.Validation.Summary.ErrorRows)
	}

	if *resolveFlag {
		upserts, err := runtime.ResolveMonth(ctx, *monthFlag, "")
		if err != nil {
			return fmt.Errorf("assignment resolution failed: %w", err)
		}
		_, _ = fmt.Fprintf(deps.out, "assignments=%d\n", len(upserts))
	}

	return nil
}

func main() {
	if err := runImporter(os.Args[1:], defaultImporterDeps()); err != nil {
		log.Fatal(err)
	}
}
