package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zulandar/hubscout/internal/export"
	"github.com/zulandar/hubscout/internal/scout"
)

func newExportCmd() *cobra.Command {
	var (
		configPath string
		dir        string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export saved records as JSON and CSV",
		Long: `Writes rebuildt_scout_<timestamp>.json and .csv into the export directory.
With --stdout, writes a single format to standard output instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, configPath, dir, format)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory (default export.dir)")
	cmd.Flags().StringVar(&format, "stdout", "", "write csv or json to stdout instead of files")
	return cmd
}

func runExport(cmd *cobra.Command, configPath, dir, format string) error {
	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	records, err := e.store().Load(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case "":
	case "csv":
		_, err := out.Write(export.CSV(records))
		return err
	case "json":
		data, err := export.JSON(records)
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))
		return err
	default:
		return fmt.Errorf("unknown --stdout format %q (want csv or json)", format)
	}

	if dir == "" {
		dir = e.cfg.Export.Dir
	}
	jsonPath, csvPath, err := export.WriteFiles(dir, records, now())
	if err != nil {
		return err
	}
	e.log.Info("records exported", "count", len(records), "json", jsonPath, "csv", csvPath)
	fmt.Fprintf(out, "Exported %d record(s)\n  %s\n  %s\n", len(records), jsonPath, csvPath)
	return nil
}

func newImportCmd() *cobra.Command {
	var (
		configPath string
		replace    bool
	)

	cmd := &cobra.Command{
		Use:   "import <file.json|file.csv>",
		Short: "Import records from an export file",
		Long: `Reads a JSON or CSV export and appends every record whose created-at key is
not already stored. With --replace the store is overwritten by the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, configPath, args[0], replace)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to hubscout config file")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the whole store with the file's records")
	return cmd
}

func runImport(cmd *cobra.Command, configPath, path string, replace bool) error {
	records, err := readExportFile(path)
	if err != nil {
		return err
	}

	e, err := connectFromConfig(configPath, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	st := e.store()
	out := cmd.OutOrStdout()

	if replace {
		if err := st.Replace(ctx, records); err != nil {
			return err
		}
		e.log.Warn("store replaced from file", "path", path, "count", len(records))
		fmt.Fprintf(out, "Replaced store with %d record(s) from %s\n", len(records), path)
		return nil
	}

	added, skipped, err := st.Merge(ctx, records)
	if err != nil {
		return err
	}
	e.log.Info("records imported", "path", path, "added", added, "skipped", skipped)
	fmt.Fprintf(out, "Imported %d record(s) from %s, skipped %d already stored\n", added, path, skipped)
	return nil
}

func readExportFile(path string) ([]*scout.Record, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return export.ParseJSON(data)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		defer f.Close()
		return export.ParseCSV(f)
	}
	return nil, fmt.Errorf("unsupported file type %q (want .json or .csv)", filepath.Ext(path))
}
