package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ChamsBouzaiene/couch/internal/config"
	"github.com/ChamsBouzaiene/couch/internal/conversation"
	"github.com/ChamsBouzaiene/couch/internal/journal"
	"github.com/ChamsBouzaiene/couch/internal/logging"
	"github.com/ChamsBouzaiene/couch/internal/session"
	"github.com/ChamsBouzaiene/couch/internal/speech"
)

type rootOptions struct {
	configPath string
	verbose    bool
	noColor    bool
	showMemory bool
	speak      bool
	recap      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "couch",
		Short: "Talk things over with Marv, a witty friend who remembers",
		Long: "couch runs a conversation with Marv in the terminal. Marv keeps the last few " +
			"exchanges verbatim and a running summary of everything older. Say \"bye\" to leave.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, opts)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to config.json (default: user config dir)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug details to stderr")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored logs")

	rootCmd.Flags().BoolVar(&opts.showMemory, "show-memory", false, "print the summary and recent history after each turn")
	rootCmd.Flags().BoolVar(&opts.speak, "speak", false, "read replies aloud (say or espeak)")
	rootCmd.Flags().BoolVar(&opts.recap, "recap", false, "print the whole conversation when it ends")

	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	logger := logging.New(logging.Options{
		Writer:  cmd.ErrOrStderr(),
		Verbose: opts.verbose,
		NoColor: opts.noColor,
	})
	slog.SetDefault(logger)

	rt, err := prepareRuntime(opts.configPath, logger)
	if err != nil {
		return err
	}

	j, err := journal.Open(ctx, logger)
	if err != nil {
		return err
	}
	defer j.Close()

	logger = logger.With("session", j.SessionID())
	logger.DebugContext(ctx, "conversation starting", "provider", rt.provider, "model", rt.model)

	stdout := cmd.OutOrStdout()
	hooks := session.Hooks{session.LoggerHook{L: logger}, j}
	if opts.showMemory {
		hooks = append(hooks, session.MemoryHook{W: stdout})
	}

	var out session.Output = session.NewConsoleOutput(stdout)
	if opts.speak {
		speaker, err := speech.New(logger)
		if err != nil {
			logger.WarnContext(ctx, "replies will not be spoken", "error", err)
		} else {
			out = &speakingOutput{Output: out, speaker: speaker, ctx: ctx}
		}
	}

	state := conversation.NewState(config.ProfileFromEnv())
	s := session.New(state,
		session.NewResponder(rt.client, rt.model, hooks),
		session.NewSummarizer(rt.client, rt.model, hooks),
		session.NewConsoleInput(cmd.InOrStdin(), stdout),
		out,
		hooks,
	)

	if err := s.Run(ctx); err != nil {
		return err
	}

	if opts.recap {
		if err := j.WriteRecap(ctx, stdout); err != nil {
			return fmt.Errorf("failed to write recap: %w", err)
		}
	}
	return nil
}

// speakingOutput displays a reply, then reads it aloud.
type speakingOutput struct {
	session.Output
	speaker *speech.Speaker
	ctx     context.Context
}

func (o *speakingOutput) Display(text string) error {
	if err := o.Output.Display(text); err != nil {
		return err
	}
	o.speaker.Speak(o.ctx, text)
	return nil
}
