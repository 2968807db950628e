package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/LuizVictorr/Achadoos-Amazon/catalog"
	"github.com/LuizVictorr/Achadoos-Amazon/config"
	"github.com/LuizVictorr/Achadoos-Amazon/docstore"
	"github.com/LuizVictorr/Achadoos-Amazon/logger"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type seedOptions struct {
	file       string
	driver     string
	collection string
	dryRun     bool
}

func newRootCommand() *cobra.Command {
	opts := seedOptions{}
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Load products from a JSON file into the document store",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSeed(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", os.Getenv("CATALOG_SEED_FILE"), "JSON file: {\"id\": {...}} or [{...}]")
	cmd.Flags().StringVar(&opts.driver, "driver", "", "store driver override (firebase, mongo, postgres)")
	cmd.Flags().StringVar(&opts.collection, "collection", catalog.ProductsPath, "target collection")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "parse and validate without writing")
	return cmd
}

func runSeed(ctx context.Context, opts seedOptions) error {
	if opts.file == "" {
		return fmt.Errorf("--file is required")
	}
	if opts.driver != "" {
		if err := os.Setenv("STORE_DRIVER", opts.driver); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Format: logger.TextFormat})
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	records, err := parseSeed(data, uuid.NewV7)
	if err != nil {
		return fmt.Errorf("parse %s: %w", opts.file, err)
	}
	log.Info("seed file parsed", zap.String("file", opts.file), zap.Int("records", len(records)))

	if opts.dryRun {
		log.Info("dry run, nothing written")
		return nil
	}
	if cfg.StoreDriver == config.DriverMemory {
		return fmt.Errorf("the memory store is not persistent; set CATALOG_SEED_FILE on the server instead")
	}

	store, err := config.InitStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer config.CloseStore(store, log)

	n, err := writeRecords(ctx, store, opts.collection, records)
	if err != nil {
		return err
	}
	log.Info("✓ products seeded", zap.Int("written", n), zap.String("collection", opts.collection))
	return nil
}

// parseSeed accepts either a keyed object, the shape the store itself uses,
// or an array of records. Array entries keep their "id" field as key when
// present and get a fresh UUIDv7 otherwise.
func parseSeed(data []byte, newID func() (uuid.UUID, error)) (map[string]docstore.Record, error) {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case strings.HasPrefix(trimmed, "{"):
		var keyed map[string]docstore.Record
		if err := json.Unmarshal(data, &keyed); err != nil {
			return nil, err
		}
		for key, rec := range keyed {
			if err := docstore.ValidateKey(key); err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			if rec == nil {
				return nil, fmt.Errorf("key %q: record is not an object", key)
			}
		}
		return keyed, nil

	case strings.HasPrefix(trimmed, "["):
		var list []docstore.Record
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, err
		}
		out := make(map[string]docstore.Record, len(list))
		for i, rec := range list {
			if rec == nil {
				return nil, fmt.Errorf("entry %d: record is not an object", i)
			}
			key, _ := rec["id"].(string)
			delete(rec, "id")
			if key == "" {
				id, err := newID()
				if err != nil {
					return nil, err
				}
				key = id.String()
			}
			if err := docstore.ValidateKey(key); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			if _, dup := out[key]; dup {
				return nil, fmt.Errorf("entry %d: duplicate id %q", i, key)
			}
			out[key] = rec
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected a JSON object or array")
}

// writeRecords puts records in key order and stops at the first failure.
func writeRecords(ctx context.Context, w docstore.Writer, collection string, records map[string]docstore.Record) (int, error) {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for i, k := range keys {
		if err := w.PutRecord(ctx, docstore.Join(collection, k), records[k]); err != nil {
			return i, fmt.Errorf("write %s: %w", k, err)
		}
	}
	return len(keys), nil
}
