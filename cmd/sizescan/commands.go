package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sizeshop/backend/internal/domain"
	"github.com/sizeshop/backend/internal/infrastructure/htmldoc"
	"github.com/sizeshop/backend/internal/infrastructure/logging"
	"github.com/sizeshop/backend/internal/usecase"
)

type rootOptions struct {
	logLevel     string
	maxHTMLBytes int
	quoteAsInch  bool
}

type scanOptions struct {
	file          string
	url           string
	format        string
	minConfidence float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "sizescan",
		Short:         "Detect clothing measurements in saved product pages",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	root.PersistentFlags().IntVar(&opts.maxHTMLBytes, "max-html-bytes", htmldoc.DefaultMaxBytes, "largest page accepted")
	root.PersistentFlags().BoolVar(&opts.quoteAsInch, "quote-as-inch", false, `read a bare " unit as inches`)

	root.AddCommand(newScanCmd(opts), newHighlightCmd(opts))
	return root
}

func newScanCmd(root *rootOptions) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Print the measurements found on a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch opts.format {
			case "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q, want json or yaml", opts.format)
			}
			if opts.minConfidence < 0 || opts.minConfidence > 1 {
				return fmt.Errorf("min-confidence must be within [0,1], got %v", opts.minConfidence)
			}

			html, err := readPage(cmd.InOrStdin(), opts.file)
			if err != nil {
				return err
			}

			service, logger := root.service()
			defer logger.Sync()

			result, err := service.Scan(cmd.Context(), &domain.ScanRequest{URL: opts.url, HTML: html})
			if err != nil {
				return err
			}
			filterByConfidence(result, opts.minConfidence)

			return writeResult(cmd.OutOrStdout(), result, opts.format)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", `HTML file to scan, "-" for stdin`)
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "URL the page was saved from")
	cmd.Flags().StringVarP(&opts.format, "format", "o", "json", "output format: json or yaml")
	cmd.Flags().Float64Var(&opts.minConfidence, "min-confidence", 0, "drop measurements below this confidence")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("url")

	return cmd
}

func newHighlightCmd(root *rootOptions) *cobra.Command {
	var (
		file      string
		countOnly bool
	)

	cmd := &cobra.Command{
		Use:   "highlight",
		Short: "Print the page body with measurements wrapped in <mark>",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			html, err := readPage(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}

			service, logger := root.service()
			defer logger.Sync()

			result, err := service.Highlight(cmd.Context(), &domain.HighlightRequest{HTML: html})
			if err != nil {
				return err
			}

			if countOnly {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Count)
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", `HTML file to highlight, "-" for stdin`)
	cmd.Flags().BoolVar(&countOnly, "count", false, "print only the number of highlights")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (o *rootOptions) service() (*usecase.ScanService, *zap.Logger) {
	logger := logging.NewOrNop(logging.Config{
		Level:       o.logLevel,
		Development: true,
		OutputPaths: []string{"stderr"},
	})
	service := usecase.NewScanService(nil, nil, logger, usecase.ScanServiceConfig{
		MaxHTMLBytes: o.maxHTMLBytes,
		QuoteAsInch:  o.quoteAsInch,
	})
	return service, logger
}

func readPage(stdin io.Reader, file string) (string, error) {
	var (
		data []byte
		err  error
	)
	if file == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(file)
	}
	if err != nil {
		return "", fmt.Errorf("read page: %w", err)
	}
	return string(data), nil
}

// filterByConfidence drops low-confidence measurements and regroups by size
func filterByConfidence(result *domain.ScanResult, threshold float64) {
	if threshold <= 0 {
		return
	}
	kept := result.Measurements[:0]
	for _, m := range result.Measurements {
		if m.Confidence >= threshold {
			kept = append(kept, m)
		}
	}
	result.Measurements = kept
	result.MeasurementsBySize, result.AvailableSizes = usecase.GroupBySize(kept)
}

func writeResult(w io.Writer, result *domain.ScanResult, format string) error {
	data, err := sonic.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if format == "yaml" {
		// round-trip through JSON so YAML keys match the API field names
		var generic interface{}
		if err := sonic.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
	}

	_, err = fmt.Fprintln(w, strings.TrimRight(string(data), "\n"))
	return err
}

