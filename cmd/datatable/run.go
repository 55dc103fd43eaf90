package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/bjaus/datatable"
	"github.com/bjaus/datatable/internal/config"
	"github.com/bjaus/datatable/internal/state"
)

// formatDocument makes flatten write the table document instead of a grid.
const formatDocument = "document"

func runRender(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src, dst, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, env.Cfg, false)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("unable to open source: %w", err)
	}
	defer in.Close()

	t, err := datatable.DecodeTable(in)
	if err != nil {
		return fmt.Errorf("unable to decode table '%s': %w", src, err)
	}
	applyDefaults(&t, env.Cfg)
	log.Debug("Table decoded", zap.String("source", src), zap.Int("rows", len(t.Rows)))

	return writeGrid(t, dst, format, env.Cfg, log)
}

func runFlatten(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	log := env.Log.Named("flatten")

	src, dst, err := sourceAndDestination(cmd, log)
	if err != nil {
		return err
	}
	format, err := outputFormat(cmd, env.Cfg, true)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read source: %w", err)
	}
	rows, err := datatable.Flatten(data)
	if err != nil {
		return fmt.Errorf("unable to flatten aggregation '%s': %w", src, err)
	}
	var t datatable.Table
	applyDefaults(&t, env.Cfg)
	t = t.WithRows(rows)
	log.Debug("Aggregation flattened", zap.String("source", src), zap.Int("rows", len(rows)))

	if format == formatDocument {
		return withOutput(dst, log, func(w io.Writer) error {
			return datatable.WriteTable(w, t)
		})
	}
	return writeGrid(t, dst, format, env.Cfg, log)
}

func writeGrid(t datatable.Table, dst string, format datatable.Format, cfg *config.Config, log *zap.Logger) error {
	defer func(start time.Time) {
		log.Debug("Rendering completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	g, err := datatable.Resolve(t)
	if err != nil {
		return fmt.Errorf("unable to resolve table: %w", err)
	}
	log.Info("Rendering table", zap.Stringer("format", format), zap.Int("rows", len(g.Rows)), zap.Int("width", g.Width()))

	return withOutput(dst, log, func(w io.Writer) error {
		if format == datatable.Text {
			return datatable.WriteText(w, g, cfg.TextOptions())
		}
		return datatable.Write(w, format, g)
	})
}

func applyDefaults(t *datatable.Table, cfg *config.Config) {
	if t.TableCSS == "" {
		t.TableCSS = cfg.Table.TableCSS
	}
	if t.RowCSS == "" {
		t.RowCSS = cfg.Table.RowCSS
	}
}

func sourceAndDestination(cmd *cli.Command, log *zap.Logger) (string, string, error) {
	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return "", "", errors.New("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	return src, cmd.Args().Get(1), nil
}

// outputFormat picks the --to flag over the configured format. allowDocument
// admits the "document" pseudo format.
func outputFormat(cmd *cli.Command, cfg *config.Config, allowDocument bool) (datatable.Format, error) {
	name := cmd.String("to")
	if name == "" {
		name = cfg.Output.Format
	}
	if allowDocument && name == formatDocument {
		return formatDocument, nil
	}
	f, err := datatable.ParseFormat(name)
	if err != nil {
		return "", fmt.Errorf("unable to use output format: %w", err)
	}
	return f, nil
}

// withOutput runs fn against the destination file, or stdout when dst is
// empty.
func withOutput(dst string, log *zap.Logger, fn func(io.Writer) error) (err error) {
	if len(dst) == 0 {
		return fn(os.Stdout)
	}
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", dst, err)
	}
	defer func() {
		if er := out.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close destination file '%s': %w", dst, er))
		}
	}()
	log.Debug("Writing output", zap.String("file", dst))
	return fn(out)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	var (
		err  error
		data []byte
		kind string
	)
	if cmd.Bool("default") {
		kind = "default"
		data, err = config.Prepare()
	} else {
		kind = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	dst := cmd.Args().Get(0)
	env.Log.Debug("Outputting configuration", zap.String("state", kind), zap.String("file", dst))
	return withOutput(dst, env.Log, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
