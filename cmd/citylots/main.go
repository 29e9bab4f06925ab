package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/voidshard/citylots"
	"github.com/voidshard/citylots/internal/store"
)

var (
	configFile string
	seed       string
	verbose    bool
	dsn        string
)

var rootCmd = &cobra.Command{
	Use:   "citylots",
	Short: "Procedural settlement layout generator",
	Long:  `Generates cities, roads and building lots for square sectors of a flat world, deterministically from a seed.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single sector",
	Long:  `Generate one sector, optionally writing it as JSON, a PNG and / or to the database.`,
	RunE:  runGenerate,
}

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate a range of sectors in parallel",
	Long:  `Generate every sector in the rectangle between --from and --to (inclusive) using a pool of workers.`,
	RunE:  runBatch,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE:  runMigrate,
}

var (
	sectorFlag string
	pngFile    string
	jsonFile   string
	check      bool

	fromFlag   string
	toFlag     string
	numWorkers int
	outDir     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (defaults used if missing)")
	rootCmd.PersistentFlags().StringVarP(&seed, "seed", "s", "", "Override the configured seed")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	generateCmd.Flags().StringVar(&sectorFlag, "sector", "0,0", "Sector coords as X,Z")
	generateCmd.Flags().StringVar(&pngFile, "png", "", "Write a PNG of the sector to this path")
	generateCmd.Flags().StringVar(&jsonFile, "json", "", "Write the sector as JSON to this path")
	generateCmd.Flags().StringVar(&dsn, "dsn", "", "Save the sector to this PostgreSQL database")
	generateCmd.Flags().BoolVar(&check, "check", false, "Validate the generated geometry")

	batchCmd.Flags().StringVar(&fromFlag, "from", "0,0", "First sector as X,Z")
	batchCmd.Flags().StringVar(&toFlag, "to", "0,0", "Last sector as X,Z")
	batchCmd.Flags().IntVarP(&numWorkers, "workers", "w", runtime.NumCPU(), "Number of worker goroutines")
	batchCmd.Flags().StringVarP(&outDir, "out", "o", "", "Write one JSON file per sector into this directory")
	batchCmd.Flags().StringVar(&dsn, "dsn", "", "Save sectors to this PostgreSQL database")

	migrateCmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL connection string")
	migrateCmd.MarkFlagRequired("dsn") //nolint:errcheck

	rootCmd.AddCommand(generateCmd, batchCmd, migrateCmd)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// loadConfig reads --config and applies --seed
func loadConfig() (*citylots.Config, error) {
	cfg, err := citylots.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if seed != "" {
		cfg.Seed = seed
	}
	slog.Debug("config loaded", "seed", cfg.Seed, "sector_size", cfg.SectorSize)
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	at, err := parsePoint(sectorFlag)
	if err != nil {
		return err
	}

	sec, err := citylots.Generate(cfg, at.X, at.Y)
	if err != nil {
		return err
	}

	if check {
		if err := sec.Validate(cfg.Lots); err != nil {
			return err
		}
		slog.Info("sector valid", "x", at.X, "z", at.Y)
	}
	if jsonFile != "" {
		if err := sec.SaveJSON(jsonFile); err != nil {
			return errors.Wrap(err, "writing json")
		}
	}
	if pngFile != "" {
		if err := sec.Map().SaveAdv(pngFile, citylots.DefaultScheme()); err != nil {
			return errors.Wrap(err, "writing png")
		}
	}
	if dsn != "" {
		if err := save(cmd.Context(), sec); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sector %d,%d: cities:%d roads:%d junctions:%d lots:%d\n",
		sec.X, sec.Z, sec.Stats.Cities, sec.Stats.Roads, sec.Stats.Junctions, sec.Stats.Lots,
	)
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	from, err := parsePoint(fromFlag)
	if err != nil {
		return err
	}
	to, err := parsePoint(toFlag)
	if err != nil {
		return err
	}

	sectors, err := citylots.GenerateSectors(cmd.Context(), cfg, sectorRange(from, to), numWorkers)
	if err != nil {
		return err
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return errors.Wrap(err, "creating output dir")
		}
		for _, sec := range sectors {
			fpath := filepath.Join(outDir, fmt.Sprintf("sector.%d.%d.json", sec.X, sec.Z))
			if err := sec.SaveJSON(fpath); err != nil {
				return errors.Wrapf(err, "writing %s", fpath)
			}
		}
	}
	if dsn != "" {
		if err := save(cmd.Context(), sectors...); err != nil {
			return err
		}
	}

	lots := 0
	for _, sec := range sectors {
		lots += sec.Stats.Lots
	}
	fmt.Fprintf(cmd.OutOrStdout(), "generated %d sectors, %d lots\n", len(sectors), lots)
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if err := store.Migrate(cmd.Context(), dsn); err != nil {
		return err
	}
	slog.Info("database migrations applied")
	return nil
}

// save writes sectors to the --dsn database
func save(ctx context.Context, sectors ...*citylots.Sector) error {
	db, err := store.New(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, sec := range sectors {
		if err := db.SaveSector(ctx, sec); err != nil {
			return errors.Wrapf(err, "saving sector %d,%d", sec.X, sec.Z)
		}
	}
	slog.Info("sectors saved", "count", len(sectors))
	return nil
}

// parsePoint parses "X,Z"
func parsePoint(in string) (image.Point, error) {
	parts := strings.Split(in, ",")
	if len(parts) != 2 {
		return image.Point{}, errors.Errorf("expected X,Z got %q", in)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Point{}, errors.Wrapf(err, "parsing x of %q", in)
	}
	z, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Point{}, errors.Wrapf(err, "parsing z of %q", in)
	}
	return image.Pt(x, z), nil
}

// sectorRange lists every sector in the rectangle spanned by a & b
// (inclusive), row by row
func sectorRange(a, b image.Point) []image.Point {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	out := []image.Point{}
	for z := r.Min.Y; z <= r.Max.Y; z++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			out = append(out, image.Pt(x, z))
		}
	}
	return out
}
