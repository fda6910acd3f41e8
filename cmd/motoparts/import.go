package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/cache"
	"github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/config"
	dompart "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/domain/part"
	partrepo "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/repository/part"
	cataloguc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/catalog"
	facetuc "github.com/lakshmimotorcyclespares1996-oss/otorcycle-spare-parts/internal/usecase/facet"
)

// seedFile is the YAML catalog import format.
type seedFile struct {
	Parts []seedPart `yaml:"parts"`
}

type seedPart struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Brand       string  `yaml:"brand"`
	Model       string  `yaml:"model"`
	YearFrom    *int    `yaml:"year_from"`
	YearTo      *int    `yaml:"year_to"`
	Price       float64 `yaml:"price"`
	Stock       int     `yaml:"stock"`
	Color       string  `yaml:"color"`
	ImageURL    string  `yaml:"image_url"`
	PartNumber  string  `yaml:"part_number"`
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Seed the catalog from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			f, err := os.Open(filepath.Clean(args[0]))
			if err != nil {
				return fmt.Errorf("open seed file: %w", err)
			}
			defer func() { _ = f.Close() }()

			parts, err := parseSeed(f)
			if err != nil {
				return err
			}

			n, err := importParts(cmd.Context(), cfg, parts, logger)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d parts\n", n)
			return err
		},
	}
}

// parseSeed decodes and validates every part; the first invalid entry fails the import.
func parseSeed(r io.Reader) ([]dompart.Part, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	if len(seed.Parts) == 0 {
		return nil, fmt.Errorf("seed file has no parts")
	}

	out := make([]dompart.Part, 0, len(seed.Parts))
	for i, sp := range seed.Parts {
		p, err := dompart.New(dompart.Attrs{
			Name:        sp.Name,
			Description: sp.Description,
			Category:    sp.Category,
			Brand:       sp.Brand,
			Model:       sp.Model,
			YearFrom:    sp.YearFrom,
			YearTo:      sp.YearTo,
			Price:       sp.Price,
			Stock:       sp.Stock,
			Color:       sp.Color,
			ImageURL:    sp.ImageURL,
			PartNumber:  sp.PartNumber,
		})
		if err != nil {
			return nil, fmt.Errorf("part #%d: %w", i+1, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// importParts writes parts in one transaction, then drops the cached facet
// and lookup lists so the API sees the new catalog.
func importParts(ctx context.Context, cfg config.Config, parts []dompart.Part, logger *zap.Logger) (int, error) {
	d, err := openCatalog(ctx, cfg.Catalog, true, logger)
	if err != nil {
		return 0, err
	}
	defer func() { _ = d.Close() }()

	n, err := partrepo.New(d).Insert(ctx, parts)
	if err != nil {
		return 0, fmt.Errorf("insert parts: %w", err)
	}

	sel := cache.Connect(ctx, cacheConfig(cfg.Cache), logger)
	defer sel.Close()

	facetuc.New(nil, sel.Cache, logger).Invalidate(ctx)
	cataloguc.New(nil, nil, sel.Cache, logger).Invalidate(ctx)

	logger.Info("Catalog imported", zap.Int("parts", n), zap.String("cache_backend", sel.Cache.Backend()))
	return n, nil
}
