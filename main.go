package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yskzt/gh-review-threads/internal/github"
	"github.com/yskzt/gh-review-threads/internal/models"
	"github.com/yskzt/gh-review-threads/internal/service"
	"github.com/yskzt/gh-review-threads/internal/ui"
)

type options struct {
	actionable     bool
	outdated       bool
	threadID       string
	jsonOutput     bool
	maxBodyChars   int
	noTruncate     bool
	botFilters     []string
	resolveIDs     []string
	resolveIndexes []int
	interactive    bool
	repo           string
	number         int
}

// validate catches usage errors before any network activity
func (o *options) validate() error {
	if o.maxBodyChars < 1 {
		return fmt.Errorf("--max-body-chars must be >= 1")
	}
	modes := 0
	if len(o.resolveIDs) > 0 {
		modes++
	}
	if len(o.resolveIndexes) > 0 {
		modes++
	}
	if o.threadID != "" {
		modes++
	}
	if o.interactive {
		modes++
	}
	if modes > 1 {
		return fmt.Errorf("choose at most one of --resolve, --resolve-indexes, --thread, or --interactive")
	}
	return nil
}

func (o *options) bodyOptions() ui.BodyOptions {
	opts := ui.BodyOptions{StripAutoSections: true}
	if !o.noTruncate {
		opts.MaxChars = &o.maxBodyChars
	}
	return opts
}

func emitResolutions(results []models.ThreadResolution, jsonOutput bool) error {
	if jsonOutput {
		content, err := ui.RenderJSON(results)
		if err != nil {
			return err
		}
		return ui.EmitOutput(os.Stdout, content, true)
	}
	return ui.EmitOutput(os.Stdout, ui.FormatResolutionStatus(results), false)
}

func runInteractive(svc *service.ReviewService, prompter ui.Prompter, rows []models.ActionableRow) error {
	if len(rows) == 0 {
		fmt.Println("No actionable review threads.")
		return nil
	}

	row, err := prompter.SelectActionable(rows)
	if err != nil {
		return err
	}

	confirmed, err := prompter.ConfirmResolve(row)
	if err != nil {
		return err
	}
	if !confirmed {
		fmt.Println("Resolution cancelled")
		return nil
	}

	results, err := svc.ResolveThreads([]string{row.ThreadID})
	if err != nil {
		return err
	}
	fmt.Println(ui.FormatResolutionStatus(results))
	return nil
}

func runCommand(opts *options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	client, err := github.NewClient()
	if err != nil {
		return fmt.Errorf("failed to create GitHub client: %w", err)
	}
	svc := service.NewReviewService(client)

	botFilters := service.NormalizeBotFilters(opts.botFilters)
	bodyOpts := opts.bodyOptions()

	// Direct resolution needs no snapshot at all
	if len(opts.resolveIDs) > 0 {
		results, err := svc.ResolveThreads(opts.resolveIDs)
		if err != nil {
			return err
		}
		return emitResolutions(results, opts.jsonOutput)
	}

	owner, repo, number, err := github.ResolveTarget(opts.repo, opts.number)
	if err != nil {
		return err
	}

	snapshot, err := svc.FetchSnapshot(owner, repo, number)
	if err != nil {
		return err
	}

	if opts.threadID != "" {
		thread, err := service.FindThread(snapshot.ReviewThreads, opts.threadID)
		if err != nil {
			return err
		}
		if opts.jsonOutput {
			content, err := ui.RenderJSON(thread)
			if err != nil {
				return err
			}
			return ui.EmitOutput(os.Stdout, content, true)
		}
		return ui.EmitOutput(os.Stdout, ui.FormatThreadMarkdown(snapshot.PullRequest, thread), false)
	}

	rows := service.BuildActionableRows(snapshot.ReviewThreads, botFilters, opts.outdated)

	if opts.interactive {
		return runInteractive(svc, &ui.DefaultPrompter{}, rows)
	}

	if len(opts.resolveIndexes) > 0 {
		threadIDs, err := service.ThreadIDsForIndexes(rows, opts.resolveIndexes)
		if err != nil {
			return err
		}
		results, err := svc.ResolveThreads(threadIDs)
		if err != nil {
			return err
		}
		return emitResolutions(results, opts.jsonOutput)
	}

	switch {
	case opts.jsonOutput && opts.actionable:
		content, err := ui.RenderJSON(ui.ActionableJSONRows(rows, bodyOpts))
		if err != nil {
			return err
		}
		return ui.EmitOutput(os.Stdout, content, true)
	case opts.jsonOutput:
		content, err := ui.RenderJSON(snapshot)
		if err != nil {
			return err
		}
		return ui.EmitOutput(os.Stdout, content, true)
	case opts.actionable:
		return ui.EmitOutput(os.Stdout, ui.FormatActionableMarkdown(snapshot.PullRequest, rows, bodyOpts, botFilters), false)
	default:
		return ui.EmitOutput(os.Stdout, ui.FormatHumanSummary(snapshot, bodyOpts, botFilters, opts.outdated), false)
	}
}

func main() {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "gh-review-threads",
		Short: "Fetch, summarize, and resolve pull request review threads",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(opts)
		},
		SilenceUsage: true,
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.actionable, "actionable", false, "show unresolved and non-outdated review threads only")
	flags.BoolVar(&opts.outdated, "outdated", false, "include unresolved outdated threads in actionable/summary output")
	flags.StringVar(&opts.threadID, "thread", "", "show full details for one review thread")
	flags.BoolVar(&opts.jsonOutput, "json", false, "print JSON output instead of markdown")
	flags.IntVar(&opts.maxBodyChars, "max-body-chars", 120, "max chars per comment body in summary/actionable output")
	flags.BoolVar(&opts.noTruncate, "no-truncate", false, "disable body truncation in summary/actionable output")
	flags.StringArrayVar(&opts.botFilters, "bot-filter", nil, "exclude comments/threads by author login (repeatable or comma-separated)")
	flags.StringArrayVar(&opts.resolveIDs, "resolve", nil, "resolve one or more review thread IDs")
	flags.IntSliceVar(&opts.resolveIndexes, "resolve-indexes", nil, "resolve one or more actionable thread indexes")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "pick an actionable thread to resolve interactively")
	flags.StringVarP(&opts.repo, "repo", "R", "", "target repository in OWNER/NAME form (defaults to the current repository)")
	flags.IntVar(&opts.number, "number", 0, "pull request number (defaults to the PR of the current branch)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
