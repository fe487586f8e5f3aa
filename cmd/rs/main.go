// Command rs is a Reed-Solomon erasure coding tool: it encodes a file
// into k data shards and m parity shards, and decodes a directory of
// surviving shards back into the original file.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli"

	"lukechampine.com/rs/internal/driver"
	"lukechampine.com/rs/internal/ledger"
	"lukechampine.com/rs/internal/rslog"
)

// VERSION is populated via build flags when packaging official binaries.
var VERSION = "SELFBUILD"

func main() {
	logger, err := rslog.New(os.Stdout, rslog.LevelFromEnv())
	if err != nil {
		fmt.Fprintln(os.Stderr, "rs: failed to initialize logger:", err)
		os.Exit(1)
	}

	app := cli.NewApp()
	app.Name = "rs"
	app.Usage = "Reed-Solomon erasure coding over GF(2^8)"
	app.Version = VERSION
	app.Commands = []cli.Command{
		encodeCommand(logger),
		decodeCommand(logger),
		historyCommand(logger),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rs: %+v\n", err)
		os.Exit(1)
	}
}

func encodeCommand(logger *rslog.Logger) cli.Command {
	return cli.Command{
		Name:  "encode",
		Usage: "split a file into data and parity shards",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "input", Usage: "path to the file to encode"},
			cli.StringFlag{Name: "output", Usage: "directory to write shards and meta.txt into"},
			cli.IntFlag{Name: "data-shards", Usage: "number of data shards (k)"},
			cli.IntFlag{Name: "parity-shards", Usage: "number of parity shards (m)"},
		},
		Action: func(c *cli.Context) error {
			start := time.Now()
			input := c.String("input")
			output := c.String("output")
			k := c.Int("data-shards")
			m := c.Int("parity-shards")

			res, err := driver.Encode(context.Background(), input, output, k, m)
			recordRun(logger, "encode", output, k, m, start, err)
			if err != nil {
				return err
			}
			logger.Infof("encoded %s (%d bytes) into %d data + %d parity shards of %d bytes each in %s",
				input, res.OrigLen, res.K, res.M, res.ShardLen, time.Since(start))
			return nil
		},
	}
}

func decodeCommand(logger *rslog.Logger) cli.Command {
	return cli.Command{
		Name:  "decode",
		Usage: "reconstruct a file from its surviving shards",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "input", Usage: "directory containing shards and meta.txt"},
			cli.StringFlag{Name: "output", Usage: "path to write the reconstructed file to"},
		},
		Action: func(c *cli.Context) error {
			start := time.Now()
			input := c.String("input")
			output := c.String("output")

			res, err := driver.Decode(context.Background(), input, output)
			recordRun(logger, "decode", input, 0, 0, start, err)
			if err != nil {
				return err
			}
			logger.Infof("reconstructed %s (%d bytes) from %s, recovering %d shard(s), in %s",
				output, res.OrigLen, input, res.Reconstructed, time.Since(start))
			return nil
		},
	}
}

func historyCommand(logger *rslog.Logger) cli.Command {
	return cli.Command{
		Name:  "history",
		Usage: "print the most recent encode/decode runs",
		Flags: []cli.Flag{
			cli.IntFlag{Name: "limit", Value: 20, Usage: "maximum number of runs to print"},
		},
		Action: func(c *cli.Context) error {
			l, err := openLedger()
			if err != nil {
				return err
			}
			defer l.Close()
			entries, err := l.Recent(c.Int("limit"))
			if err != nil {
				return err
			}
			for _, e := range entries {
				status := "ok"
				if !e.Success {
					status = "failed: " + e.Err
				}
				logger.Infof("%s %-6s k=%d m=%d %-40s %s (%s)",
					e.Time.Format(time.RFC3339), e.Operation, e.K, e.M, e.Path, e.Elapsed, status)
			}
			return nil
		},
	}
}

// recordRun appends a ledger entry for the just-completed operation.
// A failure to open or write the ledger is logged but never fails the
// command: the ledger is an operational convenience, not part of the
// encode/decode contract.
func recordRun(logger *rslog.Logger, op, path string, k, m int, start time.Time, runErr error) {
	l, err := openLedger()
	if err != nil {
		logger.Debugf("history not recorded: %v", err)
		return
	}
	defer l.Close()

	e := ledger.Entry{
		Time:      start,
		Operation: op,
		Path:      path,
		K:         k,
		M:         m,
		Success:   runErr == nil,
		Elapsed:   time.Since(start),
	}
	if runErr != nil {
		e.Err = runErr.Error()
	}
	if err := l.Append(e); err != nil {
		logger.Debugf("history not recorded: %v", err)
	}
}

func openLedger() (*ledger.Ledger, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".rs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return ledger.Open(filepath.Join(dir, "history.db"))
}
