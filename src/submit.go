package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bfhl/src/bfhl"
	"bfhl/src/panels/filter"
	"bfhl/src/panels/result"
)

var (
	submitFile    string
	submitFilters []string
)

var errAborted = errors.New("aborted")

var submitCmd = &cobra.Command{
	Use:   "submit [json]",
	Short: "Send one payload and print the filtered response",
	Long: `Sends a payload to the /bfhl endpoint and prints the selected fields.

The payload is taken from the argument, from --file, or from stdin. Without
--filter the fields are chosen interactively when attached to a terminal,
otherwise every field is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stdin := cmd.InOrStdin()
		interactive := isTerminal(stdin)

		input, err := readSubmitInput(args, submitFile, stdin, interactive)
		if err != nil {
			return err
		}

		client, err := newClient(cfg, logger)
		if err != nil {
			return err
		}

		return runSubmit(cmd.Context(), client, input, cmd.OutOrStdout(), func() ([]filter.Label, error) {
			return chooseLabels(submitFilters, interactive, askLabels)
		})
	},
}

func init() {
	submitCmd.Flags().StringVarP(&submitFile, "file", "f", "", "Read the payload from a file")
	submitCmd.Flags().StringSliceVar(&submitFilters, "filter", nil, `Field to print: "Alphabets", "Numbers" or "Highest Alphabet" (repeatable)`)
}

// readSubmitInput takes the payload from args, then file, then stdin. An
// interactive stdin is never read.
func readSubmitInput(args []string, file string, stdin io.Reader, interactive bool) (string, error) {
	switch {
	case len(args) == 1:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read payload: %w", err)
		}
		return string(data), nil
	case interactive:
		return "", errors.New("no payload given, pass it as an argument, with --file, or on stdin")
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
}

// runSubmit validates input, sends it and prints the lines for the chosen
// labels. Labels are chosen only after a successful response.
func runSubmit(ctx context.Context, client submitter, input string, out io.Writer, choose func() ([]filter.Label, error)) error {
	req, err := bfhl.ParseRequest(input)
	if err != nil {
		return errors.New(bfhl.UserMessage(err))
	}

	res, err := client.Submit(ctx, req)
	if err != nil {
		logger.Debug("Submit failed", zap.Error(err))
		return errors.New(bfhl.UserMessage(err))
	}

	labels, err := choose()
	if err != nil {
		return err
	}

	sel := filter.NewSelection()
	sel.Replace(labels)

	text := result.Text(result.Lines(res.Response, sel))
	if text == "" {
		return nil
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

// chooseLabels resolves --filter values, falling back to a prompt on a
// terminal and to every label otherwise.
func chooseLabels(flags []string, interactive bool, ask func() ([]filter.Label, error)) ([]filter.Label, error) {
	if len(flags) > 0 {
		labels := make([]filter.Label, 0, len(flags))
		for _, f := range flags {
			l, err := filter.ParseLabel(strings.TrimSpace(f))
			if err != nil {
				return nil, err
			}
			labels = append(labels, l)
		}
		return labels, nil
	}
	if interactive {
		return ask()
	}
	return filter.Labels(), nil
}

func askLabels() ([]filter.Label, error) {
	options := make([]string, 0, len(filter.Labels()))
	for _, l := range filter.Labels() {
		options = append(options, string(l))
	}

	var out []string
	prompt := &survey.MultiSelect{
		Message: "Multi Filter",
		Options: options,
		Help:    "Fields to print from the response",
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, errAborted
		}
		return nil, err
	}

	labels := make([]filter.Label, 0, len(out))
	for _, o := range out {
		labels = append(labels, filter.Label(o))
	}
	return labels, nil
}

// isTerminal reports whether r is a terminal. Readers other than files never
// are.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
