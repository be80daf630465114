package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lingokit/onboard"
	"github.com/lingokit/onboard/internal/presentation/tui"
	"github.com/lingokit/onboard/pkg/adapters/memory"
	"github.com/lingokit/onboard/pkg/adapters/sqlite"
	"github.com/lingokit/onboard/pkg/bank"
	"github.com/lingokit/onboard/pkg/domain"
	"github.com/lingokit/onboard/pkg/ports"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the onboarding conversation interactively",
	Long:  `Starts an onboarding session in the terminal against an in-memory backend. Useful for trying out question banks and demoing the flow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd)
		cachePath, _ := cmd.Flags().GetString("cache")
		bankPath, _ := cmd.Flags().GetString("bank")

		b := bank.Default()
		if bankPath != "" {
			var err error
			if b, err = bank.LoadFile(bankPath); err != nil {
				return err
			}
		}

		flags, err := buildFlagStore(cachePath)
		if err != nil {
			return err
		}

		identity := memory.NewIdentity(&ports.UserIdentity{
			ID:            "local-user",
			Email:         "local@lingokit.dev",
			EmailVerified: true,
		})

		eng := onboard.New(b, identity, flags, onboard.WithLogger(logger))
		return runSession(cmd.Context(), eng)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("cache", "", "Path to the local completion-flag database (in-memory when empty)")
	runCmd.Flags().String("bank", "", "Path to a YAML question bank (built-in script when empty)")
}

func buildFlagStore(cachePath string) (ports.FlagStore, error) {
	if cachePath == "" {
		return memory.NewFlagStore(), nil
	}
	return sqlite.New(cachePath)
}

// runSession drives the terminal chat loop over engine snapshots.
func runSession(ctx context.Context, eng *onboard.Engine) error {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(s string) string { return s }
	if isTTY {
		markdown := tui.NewRenderer()
		render = func(s string) string {
			out, err := markdown(s)
			if err != nil {
				return s
			}
			return strings.TrimRight(out, "\n")
		}
	}

	snaps := make(chan domain.Snapshot, 256)
	cancel := eng.Subscribe(func(s domain.Snapshot) {
		snaps <- s
	})
	defer cancel()

	reader := bufio.NewReader(os.Stdin)
	printed := map[string]bool{}
	typingShown := false

	if err := eng.Start(ctx); err != nil {
		return err
	}

	for snap := range snaps {
		for _, m := range snap.Messages {
			if m.Typing {
				if isTTY && !typingShown {
					fmt.Println(tui.TypingIndicator())
					typingShown = true
				}
				continue
			}
			if printed[m.ID] {
				continue
			}
			printed[m.ID] = true
			typingShown = false
			switch m.Sender {
			case domain.SenderAssistant:
				fmt.Println(render(m.Text))
			case domain.SenderUser:
				// Echoed by the terminal already; skip.
			}
		}

		switch snap.Phase {
		case domain.PhaseSkipped:
			fmt.Println("You're already onboarded. Nothing to do.")
			return nil
		case domain.PhaseComplete:
			fmt.Println(render("**" + snap.SuccessMessage + "**"))
			return nil
		case domain.PhaseFailed:
			fmt.Printf("Error: %s\n", snap.Err.Message)
			fmt.Print("Retry? [y/N] ")
			answer, _ := reader.ReadString('\n')
			if strings.EqualFold(strings.TrimSpace(answer), "y") {
				if err := eng.Retry(ctx); err != nil {
					return err
				}
				continue
			}
			return nil
		case domain.PhaseAwaiting:
			q := snap.CurrentQuestion
			// Wait for the real question text before prompting.
			if q == nil || len(snap.Messages) == 0 || snap.Messages[len(snap.Messages)-1].Typing {
				continue
			}
			resp, err := readResponse(reader, *q)
			if err != nil {
				return err
			}
			if err := eng.Submit(ctx, q.ID, resp); err != nil {
				return err
			}
		}
	}
	return nil
}

// readResponse prompts for and parses an answer matching the question kind.
func readResponse(reader *bufio.Reader, q domain.Question) (domain.Response, error) {
	if len(q.Options) > 0 {
		for i, opt := range q.Options {
			fmt.Printf("  %d) %s\n", i+1, opt)
		}
	}
	for {
		fmt.Print(tui.UserPrefix())
		line, err := reader.ReadString('\n')
		if err != nil {
			return domain.Response{}, err
		}
		line = strings.TrimSpace(line)

		switch q.Kind {
		case domain.KindSingleChoice:
			if opt, ok := pickOption(q.Options, line); ok {
				return domain.SingleChoice(opt), nil
			}
			fmt.Println("Pick one of the listed options (number or text).")
		case domain.KindMultiChoice:
			parts := domain.SplitList(line)
			opts := make([]string, 0, len(parts))
			valid := true
			for _, p := range parts {
				opt, ok := pickOption(q.Options, p)
				if !ok {
					valid = false
					break
				}
				opts = append(opts, opt)
			}
			if valid {
				return domain.MultiChoice(opts...), nil
			}
			fmt.Println("Separate choices with commas (numbers or text).")
		case domain.KindScale:
			if v, err := strconv.Atoi(line); err == nil {
				return domain.ScaleValue(v), nil
			}
			fmt.Println("Enter a number.")
		default:
			if line != "" {
				return domain.FreeText(line), nil
			}
			fmt.Println("Please type an answer.")
		}
	}
}

// pickOption resolves a 1-based index or a case-insensitive option name.
func pickOption(options []string, input string) (string, bool) {
	if len(options) == 0 {
		return input, input != ""
	}
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], true
	}
	for _, opt := range options {
		if strings.EqualFold(opt, input) {
			return opt, true
		}
	}
	return "", false
}
