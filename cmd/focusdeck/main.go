package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/spf13/cobra"

	"focusdeck/internal/bootstrap"
	sessiondto "focusdeck/internal/modules/session/dto"
	statsdto "focusdeck/internal/modules/stats/dto"
	tododto "focusdeck/internal/modules/todo/dto"
	"focusdeck/internal/platform/config"
	"focusdeck/internal/platform/id"
)

func main() {
	beeep.AppName = "focusdeck"
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var basePath, owner string

	root := &cobra.Command{
		Use:           "focusdeck",
		Short:         "Focus session tracker and todo deck",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&basePath, "base", "", "data directory (default ~/.focusdeck)")
	root.PersistentFlags().StringVar(&owner, "owner", "", "owner id (default from config)")

	root.AddCommand(newTUICmd(&basePath, &owner))
	root.AddCommand(newFocusCmd(&basePath, &owner))
	root.AddCommand(newSessionCmd(&basePath, &owner))
	root.AddCommand(newTodoCmd(&basePath, &owner))
	root.AddCommand(newStatsCmd(&basePath, &owner))
	return root
}

func loadApp(basePath, owner string) (*bootstrap.App, string, error) {
	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(owner) != "" {
		cfg.Owner = owner
	}
	app, err := bootstrap.New(cfg)
	if err != nil {
		return nil, "", err
	}
	return app, cfg.Owner, nil
}

func newTUICmd(basePath, owner *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the focusdeck terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, _, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newFocusCmd(basePath, owner *string) *cobra.Command {
	var minutes int
	var label string

	focus := &cobra.Command{
		Use:   "focus",
		Short: "Run a focus interval without the full UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if minutes <= 0 {
				minutes = app.Config.FocusMinutes
			}
			return runFocus(cmd, app, ownerID, minutes, label)
		},
	}
	focus.Flags().IntVar(&minutes, "minutes", 0, "interval length (default from config)")
	focus.Flags().StringVar(&label, "label", "", "session label")
	return focus
}

// runFocus blocks for the whole interval. Ctrl+C abandons the interval but
// still records the elapsed part as an incomplete session.
func runFocus(cmd *cobra.Command, app *bootstrap.App, ownerID string, minutes int, label string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	total := time.Duration(minutes) * time.Minute
	startedAt := time.Now().UTC()
	deadline := startedAt.Add(total)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	completed := true
	endedAt := deadline
loop:
	for {
		select {
		case <-ctx.Done():
			completed = false
			endedAt = time.Now().UTC()
			break loop
		case now := <-ticker.C:
			remaining := deadline.Sub(now)
			if remaining <= 0 {
				break loop
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\r%02d:%02d remaining ", int(remaining.Minutes()), int(remaining.Seconds())%60)
		}
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	out, err := app.SessionCLI.Log(context.Background(), sessiondto.CreateInput{
		Owner:     ownerID,
		Label:     label,
		StartedAt: startedAt,
		EndedAt:   endedAt,
		Completed: completed,
	})
	if err != nil {
		return err
	}
	if completed {
		if app.Config.Notify {
			name := label
			if name == "" {
				name = "Focus session"
			}
			_ = beeep.Notify("Focus complete", name+" finished", "")
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed %d focused minutes (%s)\n", out.DurationMin, out.ID)
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "abandoned after %d minutes (%s)\n", out.DurationMin, out.ID)
	}
	return nil
}

func newSessionCmd(basePath, owner *string) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Manage recorded focus sessions"}

	var logMinutes int
	var logLabel, logEnded string
	var logIncomplete bool
	logCmd := &cobra.Command{
		Use:   "log --minutes <n>",
		Short: "Record an already finished interval",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if logMinutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			endedAt := time.Now().UTC()
			if strings.TrimSpace(logEnded) != "" {
				endedAt, err = time.Parse(time.RFC3339, logEnded)
				if err != nil {
					return fmt.Errorf("parse --ended: %w", err)
				}
			}
			out, err := app.SessionCLI.Log(context.Background(), sessiondto.CreateInput{
				Owner:     ownerID,
				Label:     logLabel,
				StartedAt: endedAt.Add(-time.Duration(logMinutes) * time.Minute),
				EndedAt:   endedAt,
				Completed: !logIncomplete,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "logged %s: %dmin %q completed=%t\n", out.ID, out.DurationMin, out.Label, out.Completed)
			return nil
		},
	}
	logCmd.Flags().IntVar(&logMinutes, "minutes", 0, "interval length")
	logCmd.Flags().StringVar(&logLabel, "label", "", "session label")
	logCmd.Flags().StringVar(&logEnded, "ended", "", "end time, RFC3339 (default now)")
	logCmd.Flags().BoolVar(&logIncomplete, "incomplete", false, "mark as abandoned")
	session.AddCommand(logCmd)

	session.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			sessions, err := app.SessionCLI.List(context.Background(), ownerID)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				state := "completed"
				if !s.Completed {
					state = "abandoned"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%3dmin\t%s\t%s\n",
					s.ID, s.StartedAt.Format("2006-01-02 15:04"), s.DurationMin, state, s.Label)
			}
			return nil
		},
	})

	var editID, editLabel, editStarted, editEnded string
	var editCompleted bool
	edit := &cobra.Command{
		Use:   "edit --id <id>",
		Short: "Edit a recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(editID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			var patch sessiondto.PatchInput
			if cmd.Flags().Changed("label") {
				patch.Label = &editLabel
			}
			if cmd.Flags().Changed("completed") {
				patch.Completed = &editCompleted
			}
			if cmd.Flags().Changed("started") {
				t, err := time.Parse(time.RFC3339, editStarted)
				if err != nil {
					return fmt.Errorf("parse --started: %w", err)
				}
				patch.StartedAt = &t
			}
			if cmd.Flags().Changed("ended") {
				t, err := time.Parse(time.RFC3339, editEnded)
				if err != nil {
					return fmt.Errorf("parse --ended: %w", err)
				}
				patch.EndedAt = &t
			}
			out, err := app.SessionCLI.Edit(context.Background(), ownerID, editID, patch)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s: %dmin %q completed=%t\n", out.ID, out.DurationMin, out.Label, out.Completed)
			return nil
		},
	}
	edit.Flags().StringVar(&editID, "id", "", "session id")
	edit.Flags().StringVar(&editLabel, "label", "", "new label")
	edit.Flags().StringVar(&editStarted, "started", "", "new start time, RFC3339")
	edit.Flags().StringVar(&editEnded, "ended", "", "new end time, RFC3339")
	edit.Flags().BoolVar(&editCompleted, "completed", false, "completed flag")
	session.AddCommand(edit)

	var rmID string
	rm := &cobra.Command{
		Use:   "rm --id <id>",
		Short: "Delete a recorded session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(rmID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := app.SessionCLI.Remove(context.Background(), ownerID, rmID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", rmID)
			return nil
		},
	}
	rm.Flags().StringVar(&rmID, "id", "", "session id")
	session.AddCommand(rm)

	return session
}

func newTodoCmd(basePath, owner *string) *cobra.Command {
	todo := &cobra.Command{Use: "todo", Short: "Manage the ordered todo list"}
	idGen := id.RandomHex{Prefix: "todo"}

	todo.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List todos in order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			todos, err := app.TodoCLI.List(context.Background(), ownerID)
			if err != nil {
				return err
			}
			if len(todos) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no todos")
				return nil
			}
			for _, t := range todos {
				mark := " "
				if t.Completed {
					mark = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%2d [%s] %s\t%s\n", t.Position, mark, t.Text, t.ID)
			}
			return nil
		},
	})

	todo.AddCommand(&cobra.Command{
		Use:   "add <text>",
		Short: "Append a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			current, err := app.TodoCLI.List(context.Background(), ownerID)
			if err != nil {
				return err
			}
			items := toItemInputs(current)
			newID := idGen.New()
			items = append(items, tododto.ItemInput{ID: newID, Text: strings.Join(args, " ")})
			if _, err := app.TodoCLI.ReplaceAll(context.Background(), ownerID, items); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s at position %d\n", newID, len(items)-1)
			return nil
		},
	})

	done := func(use string, completed bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <id>",
			Short: "Mark a todo " + use,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, ownerID, err := loadApp(*basePath, *owner)
				if err != nil {
					return err
				}
				defer func() { _ = app.Close() }()

				state := completed
				out, err := app.TodoCLI.Patch(context.Background(), ownerID, args[0], tododto.PatchInput{Completed: &state})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s completed=%t\n", out.ID, out.Completed)
				return nil
			},
		}
	}
	todo.AddCommand(done("done", true))
	todo.AddCommand(done("undone", false))

	todo.AddCommand(&cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo and close the gap",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := app.TodoCLI.Remove(context.Background(), ownerID, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	})

	importCmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the whole list from a file (or stdin), one todo per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				in = f
			}

			var items []tododto.ItemInput
			scanner := bufio.NewScanner(in)
			for scanner.Scan() {
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}
				items = append(items, tododto.ItemInput{ID: idGen.New(), Text: text})
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			saved, err := app.TodoCLI.ReplaceAll(context.Background(), ownerID, items)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "imported %d todos\n", len(saved))
			return nil
		},
	}
	todo.AddCommand(importCmd)

	return todo
}

func toItemInputs(todos []tododto.Output) []tododto.ItemInput {
	items := make([]tododto.ItemInput, 0, len(todos))
	for _, t := range todos {
		items = append(items, tododto.ItemInput{
			ID:              t.ID,
			Text:            t.Text,
			Completed:       t.Completed,
			RecordedInStats: t.RecordedInStats,
		})
	}
	return items
}

func newStatsCmd(basePath, owner *string) *cobra.Command {
	var showHeatmap bool

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show the productivity summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, ownerID, err := loadApp(*basePath, *owner)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			out, err := app.StatsCLI.Compute(context.Background(), ownerID)
			if err != nil {
				return err
			}
			printStats(cmd, out, showHeatmap)
			return nil
		},
	}
	stats.Flags().BoolVar(&showHeatmap, "heatmap", false, "include the per-day heatmap entries")
	return stats
}

func printStats(cmd *cobra.Command, out statsdto.Output, showHeatmap bool) {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "sessions: %d (%d completed)\n", out.TotalSessions, out.CompletedSessions)
	_, _ = fmt.Fprintf(w, "focus minutes: %d\n", out.TotalFocusMinutes)
	_, _ = fmt.Fprintf(w, "avg session: %.1f min\n", out.AverageSessionMinutes)
	_, _ = fmt.Fprintf(w, "avg sessions/day: %.2f\n", out.AverageDailySessions)
	best := out.MostProductiveDay
	if best == "" {
		best = "n/a"
	}
	_, _ = fmt.Fprintf(w, "most productive day: %s\n", best)
	_, _ = fmt.Fprintf(w, "current streak: %d day(s)\n", out.CurrentStreak)
	_, _ = fmt.Fprintf(w, "weekly trend: %+.1f%%\n", out.WeeklyChange)

	printBuckets(w, "last 7 days", out.ActivityLast7Days)
	printBuckets(w, "last 30 days", out.ActivityLast30Days)
	printBuckets(w, "last 90 days", out.ActivityLast90Days)

	if showHeatmap {
		_, _ = fmt.Fprintln(w, "heatmap:")
		for _, e := range out.Heatmap {
			_, _ = fmt.Fprintf(w, "  %s\t%d session(s)\t%d min\n", e.Date, e.Count, e.Minutes)
		}
	}
}

var weekdayOrder = []string{
	time.Monday.String(), time.Tuesday.String(), time.Wednesday.String(),
	time.Thursday.String(), time.Friday.String(), time.Saturday.String(),
	time.Sunday.String(),
}

func printBuckets(w io.Writer, title string, buckets map[string]statsdto.DayBucket) {
	_, _ = fmt.Fprintf(w, "%s:\n", title)
	for _, day := range weekdayOrder {
		b := buckets[day]
		_, _ = fmt.Fprintf(w, "  %-9s %d session(s), %d min\n", day, b.Count, b.TotalMinutes)
	}
}
