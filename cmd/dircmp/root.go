package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/boostgo/dircmp"
)

// exitError signals a non-zero exit without an error message.
type exitError struct{}

func (*exitError) Error() string { return "trees differ" }

type rootFlags struct {
	encoding string
	hash     string
	strict   bool
	color    bool
	verbose  bool
	exitCode bool
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "dircmp [flags] <left> <right>",
		Short: "Compare two directory trees",
		Long: `dircmp walks two directory trees in lockstep, lists entries present on only
one side, and prints the first line/character difference of each mismatched
text file.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, args[0], args[1], stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringVar(&flags.encoding, "encoding", "utf-8", "text encoding of compared files")
	f.StringVar(&flags.hash, "hash", "", "compare content by digest in the fast path (md5, sha1, sha256)")
	f.BoolVar(&flags.strict, "strict", false, "fail on undecodable bytes instead of substituting U+FFFD")
	f.BoolVar(&flags.color, "color", false, "colorize output")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "log debug details to stderr")
	f.BoolVar(&flags.exitCode, "exit-code", false, "exit with status 1 when the trees differ")

	return cmd
}

func run(flags *rootFlags, left, right string, stdout, stderr io.Writer) error {
	level := slog.LevelWarn
	if flags.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	mode := dircmp.DecodeReplace
	if flags.strict {
		mode = dircmp.DecodeStrict
	}

	c, err := dircmp.New(
		dircmp.WithOutput(stdout),
		dircmp.WithColor(flags.color),
		dircmp.WithLogger(logger),
		dircmp.WithEncodingName(flags.encoding),
		dircmp.WithDecodeMode(mode),
		dircmp.WithContentHash(dircmp.HashType(flags.hash)),
	)
	if err != nil {
		return err
	}

	identical, err := c.CompareDirectories(left, right)
	if err != nil {
		return err
	}

	c.PrintVerdict(identical)
	if !identical && flags.exitCode {
		return &exitError{}
	}

	return nil
}
