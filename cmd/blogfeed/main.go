// Package main provides the blogfeed CLI entry point.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gauthierbraillon/blogfeed/internal/aggregator"
	"github.com/gauthierbraillon/blogfeed/internal/config"
	"github.com/gauthierbraillon/blogfeed/internal/display"
	"github.com/gauthierbraillon/blogfeed/internal/export"
	"github.com/gauthierbraillon/blogfeed/pkg/blogspot"
	"github.com/gauthierbraillon/blogfeed/pkg/browser"
	"github.com/gauthierbraillon/blogfeed/pkg/dateutil"
)

var version = "dev"

func main() {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveVersion prefers the ldflags version and falls back to the module
// version recorded by go install.
func resolveVersion(v string, info *debug.BuildInfo) string {
	if v != "dev" || info == nil {
		return v
	}
	if mv := info.Main.Version; mv != "" && mv != "(devel)" {
		return mv
	}
	return v
}

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

// getConfigPath returns the config file path (overridable for testing).
func (g *globalFlags) getConfigPath() string {
	if g.configPath != "" {
		return g.configPath
	}
	if path := os.Getenv("BLOGFEED_CONFIG"); path != "" {
		return path
	}
	return config.DefaultPath()
}

// loadConfig reads the config file. A missing file yields the defaults.
func (g *globalFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Read(g.getConfigPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}
	return cfg, nil
}

func (g *globalFlags) newLogger(w io.Writer) *zap.Logger {
	var encoder zapcore.Encoder
	level := zapcore.WarnLevel
	if g.verbose {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		level = zapcore.DebugLevel
	} else {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

// newRootCmd creates the root command for blogfeed CLI.
func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	var buildInfo *debug.BuildInfo
	if info, ok := debug.ReadBuildInfo(); ok {
		buildInfo = info
	}

	rootCmd := &cobra.Command{
		Use:          "blogfeed",
		Short:        "Read posts from a Blogspot blog",
		Long:         "Blogfeed reads the public JSON feed of a Blogspot blog and shows its latest posts.",
		Version:      resolveVersion(version, buildInfo),
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("blogfeed version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to the TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log request details to stderr")

	rootCmd.AddCommand(newReadCmd(g))
	rootCmd.AddCommand(newOpenCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))

	return rootCmd
}

// readSettings are the effective options of a single read.
type readSettings struct {
	blog  string
	cfg   config.Config
	since time.Time
	until time.Time
}

// fetchPosts reads the blog feed and waits for every listener to run.
func fetchPosts(s readSettings, logger *zap.Logger) ([]blogspot.Post, error) {
	opts := []blogspot.ReaderOption{blogspot.WithLogger(logger)}
	if url := os.Getenv("BLOGFEED_FEED_URL"); url != "" {
		opts = append(opts, blogspot.WithFeedURL(url))
	}
	reader := blogspot.NewReader(s.blog, opts...)
	reader.SetContentTruncation(s.cfg.Truncate)
	reader.SetDateFormatter(dateFormatter(s.cfg))

	var readErr error
	reader.AddSuccessListener(func(status string) {
		logger.Debug("feed loaded", zap.String("blog", s.blog), zap.String("status", status))
	})
	reader.AddFailureListener(func(status string, transport *blogspot.TransportError, thrown error) {
		readErr = failureError(s.blog, status, transport, thrown)
	})

	agg := aggregator.New()
	reader.AddReadListener(agg.Listener())

	<-reader.Read(s.cfg.Limit)
	if readErr != nil {
		return nil, readErr
	}

	return agg.GetFeed(aggregator.FeedOptions{Since: s.since, Until: s.until}), nil
}

func failureError(blog, status string, transport *blogspot.TransportError, thrown error) error {
	switch {
	case transport != nil:
		return fmt.Errorf("failed to read %s (%s): %w", blog, status, transport)
	case thrown != nil:
		return fmt.Errorf("failed to read %s (%s): %w", blog, status, thrown)
	default:
		return fmt.Errorf("feed of %s has no posts", blog)
	}
}

// dateFormatter maps the configured date style to a formatter.
func dateFormatter(cfg config.Config) blogspot.DateFormatter {
	switch cfg.DateStyle {
	case config.DateStyleDate:
		return func(t time.Time) string { return dateutil.FormatDateOnly(t.Local(), cfg.AbbreviatedMonth) }
	case config.DateStyleDateTime:
		return func(t time.Time) string { return dateutil.FormatDateTime(t.Local(), cfg.AbbreviatedMonth) }
	default:
		return blogspot.DefaultDateFormatter
	}
}

// parseBound parses a --since or --until value. A bare date means midnight.
func parseBound(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if len(value) == len("2006-01-02") {
		value += " 00:00:00"
	}
	t := dateutil.ParseDate(value)
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected yyyy-mm-dd or 'yyyy-mm-dd hh:mm:ss'", flag, value)
	}
	return t, nil
}

// resolveBlog picks the blog from the argument list or the config file.
func resolveBlog(args []string, cfg config.Config) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if cfg.Blog != "" {
		return cfg.Blog, nil
	}
	return "", errors.New("missing blog name: pass it as an argument or set 'blog' in the config file")
}

// newReadCmd creates the read subcommand.
func newReadCmd(g *globalFlags) *cobra.Command {
	var (
		limit       int
		truncate    int
		dateStyle   string
		abbreviated bool
		format      string
		since       string
		until       string
	)

	cmd := &cobra.Command{
		Use:   "read [blog]",
		Short: "Display the latest posts of a blog",
		Long:  "Fetch the feed of {blog}.blogspot.com and display its latest posts, or export them as RSS, Atom or JSON Feed.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("limit") {
				cfg.Limit = limit
			}
			if flags.Changed("truncate") {
				cfg.Truncate = truncate
			}
			if flags.Changed("date-style") {
				cfg.DateStyle = dateStyle
			}
			if flags.Changed("abbrev") {
				cfg.AbbreviatedMonth = abbreviated
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			blog, err := resolveBlog(args, cfg)
			if err != nil {
				return err
			}
			s := readSettings{blog: blog, cfg: cfg}
			if s.since, err = parseBound("since", since); err != nil {
				return err
			}
			if s.until, err = parseBound("until", until); err != nil {
				return err
			}

			logger := g.newLogger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()

			posts, err := fetchPosts(s, logger)
			if err != nil {
				return err
			}

			if cfg.Format == config.FormatText {
				fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatPosts(posts))
				return nil
			}
			outFormat, err := export.ParseFormat(cfg.Format)
			if err != nil {
				return err
			}
			out, err := export.Render(outFormat, export.BlogMeta(blog), posts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of posts to read (0 for all)")
	cmd.Flags().IntVarP(&truncate, "truncate", "t", 0, "Truncate content and summary to this many characters (0 to disable)")
	cmd.Flags().StringVar(&dateStyle, "date-style", config.DateStyleDateTime, "Date rendering (utc, date, datetime)")
	cmd.Flags().BoolVar(&abbreviated, "abbrev", false, "Use abbreviated month names")
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatText, "Output format (text, rss, atom, json)")
	cmd.Flags().StringVar(&since, "since", "", "Only show posts published at or after this date")
	cmd.Flags().StringVar(&until, "until", "", "Only show posts published at or before this date")

	return cmd
}

// newOpenCmd creates the open subcommand.
func newOpenCmd(g *globalFlags) *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "open [blog] <index>",
		Short: "Open a post in the browser",
		Long:  "Open the permalink of the post at the given 1-based position of the feed in the default browser.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[len(args)-1])
			if err != nil || index < 1 {
				return fmt.Errorf("invalid index %q: must be a positive number", args[len(args)-1])
			}

			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			blog, err := resolveBlog(args[:len(args)-1], cfg)
			if err != nil {
				return err
			}
			cfg.Limit = index

			logger := g.newLogger(cmd.ErrOrStderr())
			defer func() { _ = logger.Sync() }()

			posts, err := fetchPosts(readSettings{blog: blog, cfg: cfg}, logger)
			if err != nil {
				return err
			}
			if len(posts) < index {
				return fmt.Errorf("post %d not found: %s has %d posts", index, blog, len(posts))
			}

			link := posts[index-1].PermalinkURL
			if link == "" {
				return fmt.Errorf("post %d has no permalink", index)
			}
			if printOnly {
				fmt.Fprintln(cmd.OutOrStdout(), link)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Opening %s\n", link)
			if err := browser.Open(link); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Could not open browser. Please visit:\n%s\n", link)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&printOnly, "print", "p", false, "Print the permalink instead of opening it")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the config file location and the effective blogfeed settings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config file: %s\n", g.getConfigPath())
			fmt.Fprintf(out, "blog = %q\n", cfg.Blog)
			fmt.Fprintf(out, "limit = %d\n", cfg.Limit)
			fmt.Fprintf(out, "truncate = %d\n", cfg.Truncate)
			fmt.Fprintf(out, "date_style = %q\n", cfg.DateStyle)
			fmt.Fprintf(out, "abbreviated_month = %t\n", cfg.AbbreviatedMonth)
			fmt.Fprintf(out, "format = %q\n", cfg.Format)
			return nil
		},
	}

	return cmd
}
