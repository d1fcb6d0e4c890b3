package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"corona-spread-gif/animation"
	"corona-spread-gif/browser"
	"corona-spread-gif/config"
	"corona-spread-gif/geo"
	"corona-spread-gif/models"
	"corona-spread-gif/render"
	"corona-spread-gif/services"
	"corona-spread-gif/storage"
	"corona-spread-gif/utils"
)

func bindRenderFlags(cmd *cobra.Command, opts *config.RunOptions) {
	f := cmd.Flags()
	f.StringVarP(&opts.OutputDir, "output", "o", opts.OutputDir, "Directory for frames and the animation.")
	f.StringVarP(&opts.InputDir, "input", "i", opts.InputDir, "Directory holding the time_series_covid_19_*.csv files.")
	f.BoolVar(&opts.Confirmed, "confirmed", opts.Confirmed, "Plot confirmed cases.")
	f.BoolVar(&opts.Deaths, "deaths", opts.Deaths, "Plot deaths.")
	f.StringVarP(&opts.StartDate, "start", "s", opts.StartDate, "First date to render, m/d/yy.")
	f.BoolVarP(&opts.Normalize, "normalize", "n", opts.Normalize, "Normalise counts by country population.")
	f.StringVar(&opts.StylePath, "style", opts.StylePath, "Optional YAML style file.")
	f.StringVar(&opts.Format, "format", opts.Format, "Animation format: gif or apng.")
}

func newRenderCommand(cfg *config.Config, verbose *bool) *cobra.Command {
	opts := cfg.Options()
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one map per date and assemble them into an animation.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := utils.NewLoggerTo(os.Stderr, *verbose)
			return runRender(cmd.Context(), cfg, opts, nil, logger, cmd.OutOrStdout())
		},
	}
	bindRenderFlags(cmd, opts)
	return cmd
}

// runRender is the render pipeline. A nil rasterizer means headless Chrome.
func runRender(ctx context.Context, cfg *config.Config, opts *config.RunOptions,
	rasterizer services.Rasterizer, logger *utils.Logger, out io.Writer) (err error) {
	if err := opts.Validate(); err != nil {
		return err
	}

	style, err := config.LoadStyle(opts.StylePath)
	if err != nil {
		return err
	}
	colors, err := style.ColorMap()
	if err != nil {
		return err
	}
	assembler, err := animation.New(opts.Format)
	if err != nil {
		return err
	}

	collection, err := storage.LoadDatasets(opts.InputDir, opts.Confirmed, opts.Deaths)
	if err != nil {
		return err
	}
	if err := services.ValidateColors(collection, colors); err != nil {
		return err
	}
	dates := storage.DateRange(collection, opts.Start)
	if len(dates) == 0 {
		return models.Configf("no dates on or after %s in %s", opts.StartDate, opts.InputDir)
	}
	logger.Info("Rendering %d frames (%s .. %s), normalize=%t, %s", len(dates), dates[0], dates[len(dates)-1], opts.Normalize, style)

	var resolver services.PopulationResolver
	if opts.Normalize {
		ref, err := geo.LoadEmbeddedReference()
		if err != nil {
			return err
		}
		resolver = geo.NewResolver(ref)
	}

	records, err := openRecordWriters(cfg, opts, logger)
	if err != nil {
		return err
	}
	defer closeRecords(records, &err)

	if rasterizer == nil {
		rasterizer = browser.NewChromeRasterizer(cfg, logger)
	}
	frames := services.NewFrameGenerator(
		services.NewMarkerGenerator(resolver, logger),
		services.FrameOptions{
			View:      style.View(),
			Normalize: opts.Normalize,
			Credit:    style.Credit,
			ShowDate:  style.ShowDate,
			FontSize:  style.FontSize,
		},
		logger,
	)
	renderer := render.NewHTMLRenderer(render.TileLayer{URL: style.TileURL, Attribution: style.TileAttrib})
	seq := services.NewSequencer(frames, renderer, rasterizer, records, opts.OutputDir, logger)

	result, err := seq.Sequence(ctx, collection, colors, dates)
	if err != nil {
		return err
	}

	animPath := filepath.Join(opts.OutputDir, services.AnimationBaseName(opts.Normalize)+assembler.Extension())
	if err := assembler.Assemble(result.Images, animPath); err != nil {
		return fmt.Errorf("assemble animation: %w", err)
	}
	logger.Info("Animation written to %s", animPath)

	summary := services.NewSummaryService(logger)
	summary.Print(out, summary.Generate(collection, result, animPath))
	return nil
}

// closeRecords flushes the manifest, reporting its error unless the run already failed.
func closeRecords(w storage.FrameRecordWriter, err *error) {
	if cerr := w.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("close frame records: %w", cerr)
	}
}

func openRecordWriters(cfg *config.Config, opts *config.RunOptions, logger *utils.Logger) (storage.FrameRecordWriter, error) {
	manifest := filepath.Join(opts.OutputDir, services.FrameBaseName("frames", opts.Normalize)+".csv")
	csvWriter, err := storage.NewCSVWriter(manifest)
	if err != nil {
		return nil, err
	}
	writers := storage.MultiWriter{csvWriter}

	if cfg.PostgresDSN != "" {
		pg, err := storage.NewPostgresWriter(cfg.PostgresDSN)
		if err != nil {
			_ = csvWriter.Close()
			return nil, err
		}
		logger.Info("Frame manifest mirrored to PostgreSQL (table: frames)")
		writers = append(writers, pg)
	}
	return writers, nil
}
