// Copyright 2026 Bordonal Medical
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	revela "github.com/bordonalmed/REVELA-sub000"
	"github.com/bordonalmed/REVELA-sub000/backup"
	"github.com/bordonalmed/REVELA-sub000/core"
)

func main() {
	app := &cli.App{
		Name:  "revela",
		Usage: "Local persistence and backup engine for before/after photo projects",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data-dir",
				Aliases: []string{"d"},
				Usage:   "Path to the data directory holding both backends",
				Value:   "./revela-data",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all projects, most recent first",
				Action: listCommand,
			},
			{
				Name:      "show",
				Usage:     "Show a single project",
				ArgsUsage: "<id>",
				Action:    showCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a project from both backends",
				ArgsUsage: "<id>",
				Action:    deleteCommand,
			},
			{
				Name:   "export",
				Usage:  "Export all projects and folders to a backup file",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Usage:    "Path of the backup file to write",
						Required: true,
					},
				},
			},
			{
				Name:   "import",
				Usage:  "Import projects and folders from a backup file",
				Action: importCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Path of the backup file to read",
						Required: true,
					},
				},
			},
			{
				Name:  "folders",
				Usage: "Manage folders",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List all folders with their project counts",
						Action: foldersListCommand,
					},
					{
						Name:      "delete",
						Usage:     "Delete a folder; its projects are kept and unfiled",
						ArgsUsage: "<id>",
						Action:    foldersDeleteCommand,
					},
				},
			},
			{
				Name:  "autobackup",
				Usage: "Manage the auto-backup flag",
				Subcommands: []*cli.Command{
					{
						Name:   "enable",
						Usage:  "Enable auto-backup and write a checkpoint backup",
						Action: autoBackupEnableCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "output",
								Aliases:  []string{"o"},
								Usage:    "Path of the checkpoint backup file to write",
								Required: true,
							},
						},
					},
					{
						Name:   "disable",
						Usage:  "Disable auto-backup",
						Action: autoBackupDisableCommand,
					},
					{
						Name:   "status",
						Usage:  "Show the auto-backup flag and last backup time",
						Action: autoBackupStatusCommand,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// openDatabase opens both backends under the data directory. The caller is
// responsible for closing the returned database.
func openDatabase(c *cli.Context) (*revela.Database, error) {
	db, err := revela.NewDatabase(c.String("data-dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// parseID parses a decimal record id from a positional argument.
func parseID(c *cli.Context) (core.ID, error) {
	arg := c.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("missing required argument: id")
	}
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", arg, err)
	}
	return core.ID(id), nil
}

func listCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	projects, err := db.Store().GetAllProjects(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	fmt.Printf("%d project(s)\n", len(projects))
	for _, p := range projects {
		folder := ""
		if p.FolderId != 0 {
			folder = fmt.Sprintf("  folder=%d", p.FolderId)
		}
		fmt.Printf("%d  %s  (%d before, %d after)%s\n",
			p.Id, p.Name, len(p.BeforeImages), len(p.AfterImages), folder)
	}
	return nil
}

func showCommand(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	p, err := db.Store().GetProject(c.Context, id)
	if err != nil {
		return fmt.Errorf("failed to load project %d: %w", id, err)
	}

	fmt.Printf("Id:           %d\n", p.Id)
	fmt.Printf("Name:         %s\n", p.Name)
	fmt.Printf("Date:         %s\n", p.Date)
	fmt.Printf("Notes:        %s\n", p.Notes)
	fmt.Printf("Folder:       %d\n", p.FolderId)
	fmt.Printf("Before:       %d image(s)\n", len(p.BeforeImages))
	fmt.Printf("After:        %d image(s)\n", len(p.AfterImages))
	fmt.Printf("Measurements: %d\n", len(p.Measurements))
	fmt.Printf("Created:      %s\n", p.CreatedAt)
	fmt.Printf("Updated:      %s\n", p.UpdatedAt)
	return nil
}

func deleteCommand(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Store().DeleteProject(c.Context, id); err != nil {
		return fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	fmt.Printf("Deleted project %d\n", id)
	return nil
}

func exportCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := db.Codec().Export(c.Context)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	encoded, err := backup.EncodeBackup(data)
	if err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(c.String("output"), encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	fmt.Printf("Exported %d project(s), %d folder(s), %d image(s) to %s\n",
		data.Metadata.TotalProjects, data.Metadata.TotalFolders,
		data.Metadata.TotalImages, c.String("output"))
	return nil
}

func importCommand(c *cli.Context) error {
	raw, err := os.ReadFile(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := backup.DecodeBackup(raw)
	if err != nil {
		return fmt.Errorf("failed to decode backup file: %w", err)
	}
	result, err := db.Codec().Import(c.Context, data)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d project(s), %d failed\n", result.Succeeded, result.Failed)
	for _, msg := range result.Errors {
		fmt.Printf("  - %s\n", msg)
	}
	return nil
}

func foldersListCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	folders, err := db.Store().GetAllFolders(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load folders: %w", err)
	}
	projects, err := db.Store().GetAllProjects(c.Context)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	counts := make(map[core.ID]int)
	for _, p := range projects {
		counts[p.FolderId]++
	}

	fmt.Printf("%d folder(s)\n", len(folders))
	for _, f := range folders {
		fmt.Printf("%d  %s  (%d project(s))\n", f.Id, f.Name, counts[f.Id])
	}
	if counts[0] > 0 {
		fmt.Printf("unfiled: %d project(s)\n", counts[0])
	}
	return nil
}

func foldersDeleteCommand(c *cli.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Store().DeleteFolder(c.Context, id); err != nil {
		return fmt.Errorf("failed to delete folder %d: %w", id, err)
	}
	fmt.Printf("Deleted folder %d; its projects are now unfiled\n", id)
	return nil
}

func autoBackupEnableCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	data, err := db.Scheduler().Enable(c.Context, db.Codec())
	if err != nil {
		return fmt.Errorf("failed to enable auto-backup: %w", err)
	}
	encoded, err := backup.EncodeBackup(data)
	if err != nil {
		return fmt.Errorf("failed to encode checkpoint backup: %w", err)
	}
	if err := os.WriteFile(c.String("output"), encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write checkpoint backup: %w", err)
	}

	fmt.Printf("Auto-backup enabled; checkpoint written to %s\n", c.String("output"))
	return nil
}

func autoBackupDisableCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Scheduler().Disable(); err != nil {
		return fmt.Errorf("failed to disable auto-backup: %w", err)
	}
	fmt.Println("Auto-backup disabled")
	return nil
}

func autoBackupStatusCommand(c *cli.Context) error {
	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if db.Scheduler().IsEnabled() {
		fmt.Println("Auto-backup: enabled")
	} else {
		fmt.Println("Auto-backup: disabled")
	}
	if last, ok := db.Scheduler().LastBackup(); ok {
		fmt.Printf("Last backup: %s\n", last)
	} else {
		fmt.Println("Last backup: never")
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
