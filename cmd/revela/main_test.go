package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestExportCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "revela",
		Commands: []*cli.Command{
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
		},
	}

	t.Run("output is required", func(t *testing.T) {
		args := []string{"revela", "export"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "output")
	})

	t.Run("output has alias -o", func(t *testing.T) {
		cmd := app.Commands[0]
		var outputFlag *cli.StringFlag
		for _, f := range cmd.Flags {
			if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "output" {
				outputFlag = sf
				break
			}
		}
		require.NotNil(t, outputFlag)
		assert.Contains(t, outputFlag.Aliases, "o")
		assert.True(t, outputFlag.Required)
	})
}

func TestImportCommandFlags(t *testing.T) {
	app := &cli.App{
		Name: "revela",
		Commands: []*cli.Command{
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
		},
	}

	t.Run("input is required", func(t *testing.T) {
		args := []string{"revela", "import"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})

	t.Run("missing input file fails", func(t *testing.T) {
		args := []string{"revela", "import", "--input", "/nonexistent/backup.json"}
		err := app.Run(args)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read backup file")
	})
}

func TestParseID(t *testing.T) {
	newContext := func(args ...string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		require.NoError(t, set.Parse(append([]string{"--"}, args...)))
		return cli.NewContext(cli.NewApp(), set, nil)
	}

	t.Run("valid decimal id", func(t *testing.T) {
		id, err := parseID(newContext("42"))
		require.NoError(t, err)
		assert.EqualValues(t, 42, id)
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := parseID(newContext())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required argument")
	})

	t.Run("non-numeric argument", func(t *testing.T) {
		_, err := parseID(newContext("not-a-number"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid id")
	})

	t.Run("negative argument", func(t *testing.T) {
		_, err := parseID(newContext("-7"))
		require.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: tc.input,
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		testCases := []string{
			"DEBUG",
			"Info",
			"WaRn",
			"ERROR",
		}

		for _, tc := range testCases {
			t.Run(tc, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{
							Name:  "log-level",
							Value: "info",
						},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error {
						return nil
					},
				}

				err := app.Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				return nil
			},
		}

		err := app.Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
		assert.Contains(t, err.Error(), "invalid")
	})

	t.Run("default log level is info", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				level := c.String("log-level")
				assert.Equal(t, "info", level)
				return nil
			},
		}

		err := app.Run([]string{"test"})
		require.NoError(t, err)
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		app := &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error {
				level := c.String("log-level")
				assert.Equal(t, "debug", level)
				return nil
			},
		}

		err := app.Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	// Run tests
	code := m.Run()
	os.Exit(code)
}
