package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	app "github.com/okian/replaymerge/internal/app"
	"github.com/okian/replaymerge/internal/domain/match"
	"github.com/okian/replaymerge/internal/domain/recording"
	"github.com/okian/replaymerge/pkg/logger"
)

var errNoFiles = errors.New("no recordings given")

func newPlanCommand() *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Usage:     "group parser outputs into games and print the archive plan",
		ArgsUsage: "RECORDING.json...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagP1, Usage: "first player name used in file names"},
			&cli.StringFlag{Name: flagP2, Usage: "second player name used in file names"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return errNoFiles
			}
			e, err := setup(c)
			if err != nil {
				return err
			}

			uploads := make([]app.Upload, 0, c.NArg())
			for _, path := range c.Args().Slice() {
				up, err := e.readUpload(path)
				if err != nil {
					return err
				}
				uploads = append(uploads, up)
			}

			svc := e.service()
			results, err := svc.ImportBatch(c.Context, uploads)
			if err != nil {
				return err
			}
			for i, res := range results {
				if res.Err != nil {
					e.log.Warn(c.Context, "recording kept as dummy",
						logger.String("file", uploads[i].File.Name), logger.Error(res.Err))
				}
			}

			w := c.App.Writer
			fmt.Fprintf(w, "session %s\n", svc.ID())
			for _, g := range svc.Games(c.Context) {
				if g.Dummy {
					fmt.Fprintf(w, "game %d: dummy, %d replay(s), date %s\n", g.Index+1, g.Replays, formatDate(g.Date))
					continue
				}
				fmt.Fprintf(w, "game %d: %s, %s, winner %s, %d replay(s), date %s\n",
					g.Index+1, g.MapName, g.Duration, g.Winner, g.Replays, formatDate(g.Date))
				printTeams(w, g.Teams)
			}

			plan := svc.Plan(c.Context, c.String(flagP1), c.String(flagP2))
			fmt.Fprintf(w, "archive %s\n", plan.ZipName)
			for _, entry := range plan.Entries {
				fmt.Fprintf(w, "  %s <- %s\n", entry.Preview, entry.File.Name)
			}
			return nil
		},
	}
}

func newInspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print what one parser output says about its game",
		ArgsUsage: "RECORDING.json",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("%w: inspect takes exactly one file", errNoFiles)
			}
			e, err := setup(c)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(c.Args().First())
			if err != nil {
				return err
			}
			rec, err := recording.Decode(data)
			if err != nil {
				return err
			}

			w := c.App.Writer
			parsed, ok := rec.(*recording.Parsed)
			if !ok {
				fmt.Fprintf(w, "failed parse, date %s\n", formatUnix(rec.Timestamp()))
				return nil
			}
			info, err := e.engine.Extract(parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "map %s, %s, winner %s, date %s\n",
				info.MapName, time.Duration(info.Duration)*time.Millisecond, match.ResolveWinner(info.Teams), formatDate(info.Date))
			fmt.Fprintf(w, "resignations %v\n", info.Resignations)
			printTeams(w, info.Teams)
			return nil
		},
	}
}

func formatUnix(ts int64) string {
	if ts == 0 {
		return "unknown"
	}
	return formatDate(time.Unix(ts, 0).UTC())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(time.RFC3339)
}
