// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/8ware/unrarctl/internal/adapters/execunrar"
	"github.com/8ware/unrarctl/internal/adapters/osfs"
	"github.com/8ware/unrarctl/internal/archive"
	"github.com/8ware/unrarctl/internal/config"
	"github.com/8ware/unrarctl/internal/ports"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// ArchiveService provides listing and extraction operations for the CLI.
type ArchiveService interface {
	List(opts archive.Options) (archive.Tree, error)
	Extract(opts archive.Options) ([]string, error)
	ExtractFlat(opts archive.Options) ([]string, error)
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc  ConfigService
	ArchiveSvc ArchiveService
	FS         ports.FileSystem

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	exitCode := 0
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) { exitCode = code; _ = exitCode },
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error) { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string            { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config { return config.DefaultConfig() }

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) archiveSvc(cfg *config.Config) ArchiveService {
	if c.ArchiveSvc != nil {
		return c.ArchiveSvc
	}
	return archive.New(execunrar.New(execunrar.WithUnrarPath(cfg.UnrarPath)))
}

func (c *CLI) fs() ports.FileSystem {
	if c.FS != nil {
		return c.FS
	}
	return osfs.New()
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		fmt.Fprintln(c.Out, "No command specified. Use 'unrarctl help' for usage.")
		return
	}

	switch c.Args[1] {
	case "list", "ls":
		c.RunList()
	case "extract", "x":
		c.RunExtract()
	case "check":
		c.RunCheck()
	case "init":
		c.InitConfig()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "unrarctl v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `unrarctl - RAR listing and extraction via the unrar binary

Usage:
  unrarctl                                 Launch interactive browser
  unrarctl list <archive> [--flat] [--password=PW]
                                           Show the archive's directory tree
  unrarctl extract <archive> [--flat] [--dest=DIR] [--overwrite] [--password=PW]
                                           Extract the archive (--flat discards paths)
  unrarctl check <archive> [--password=PW] Probe whether the archive opens
  unrarctl init                            Create default config file
  unrarctl version, -v                     Show version
  unrarctl help, -h                        Show this help

Config: ~/.unrarctl/config.yaml`)
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	if err := svc.Save(svc.DefaultConfig()); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// RunList shows the archive's directory structure.
func (c *CLI) RunList() {
	file, flags := c.parseArchiveArgs("list")
	if file == "" {
		return
	}

	cfg, opts, ok := c.buildOptions(file, flags)
	if !ok {
		return
	}

	tree, err := c.archiveSvc(cfg).List(opts)
	if err != nil {
		c.reportArchiveError(err)
		return
	}

	if flags["flat"] != "" {
		for _, path := range tree.Flatten() {
			fmt.Fprintln(c.Out, path)
		}
	} else {
		fmt.Fprintln(c.Out, tree.Render(c.cyan(file)))
	}

	fmt.Fprintf(c.Out, "\n%s top-level entries\n", c.green(fmt.Sprintf("%d", tree.Count())))
}

// RunExtract extracts the archive.
func (c *CLI) RunExtract() {
	file, flags := c.parseArchiveArgs("extract")
	if file == "" {
		return
	}

	cfg, opts, ok := c.buildOptions(file, flags)
	if !ok {
		return
	}

	if opts.Destination != "" {
		if err := c.fs().MkdirAll(opts.Destination, 0755); err != nil {
			fmt.Fprintf(c.Err, "Error creating destination: %v\n", err)
			c.Exit(1)
			return
		}
	}

	svc := c.archiveSvc(cfg)
	var paths []string
	var err error
	if flags["flat"] != "" {
		paths, err = svc.ExtractFlat(opts)
	} else {
		paths, err = svc.Extract(opts)
	}
	if err != nil {
		c.reportArchiveError(err)
		return
	}

	for _, path := range paths {
		fmt.Fprintf(c.Out, "  %s %s\n", c.green("*"), path)
	}
	fmt.Fprintf(c.Out, "\nDone: %s extracted\n", c.green(fmt.Sprintf("%d", len(paths))))
}

// RunCheck probes whether the archive can be opened and listed.
func (c *CLI) RunCheck() {
	file, flags := c.parseArchiveArgs("check")
	if file == "" {
		return
	}

	cfg, opts, ok := c.buildOptions(file, flags)
	if !ok {
		return
	}

	tree, err := c.archiveSvc(cfg).List(opts)
	if err != nil {
		var toolErr *archive.ToolError
		if errors.As(err, &toolErr) {
			switch toolErr.Status {
			case archive.StatusBadArchive:
				fmt.Fprintf(c.Out, "%s %s: CRC failed or wrong password (status %d)\n",
					c.red("x"), file, toolErr.Status)
			case archive.StatusNotFound:
				fmt.Fprintf(c.Out, "%s %s: missing or not a readable archive (status %d)\n",
					c.red("x"), file, toolErr.Status)
			default:
				fmt.Fprintf(c.Out, "%s %s: unrar failed (status %d)\n",
					c.red("x"), file, toolErr.Status)
			}
			c.Exit(1)
			return
		}
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s %s: %d top-level entries\n", c.green("*"), file, tree.Count())
}

// parseArchiveArgs pulls the archive path and flags out of the arguments for
// commands of the form "unrarctl <cmd> <archive> [flags]". Unrecognized
// flags are ignored rather than rejected.
func (c *CLI) parseArchiveArgs(command string) (string, map[string]string) {
	if len(c.Args) < 3 {
		fmt.Fprintf(c.Out, "Usage: unrarctl %s <archive> [flags]\n", command)
		c.Exit(1)
		return "", nil
	}

	file := ""
	flags := make(map[string]string)
	for _, arg := range c.Args[2:] {
		switch {
		case arg == "--flat":
			flags["flat"] = "true"
		case arg == "--overwrite":
			flags["overwrite"] = "true"
		case strings.HasPrefix(arg, "--password="):
			flags["password"] = strings.TrimPrefix(arg, "--password=")
		case strings.HasPrefix(arg, "--dest="):
			flags["dest"] = strings.TrimPrefix(arg, "--dest=")
		case strings.HasPrefix(arg, "--"):
			// Ignored on purpose; unknown options have never been an error.
		case file == "":
			file = arg
		}
	}

	if file == "" {
		fmt.Fprintf(c.Out, "Usage: unrarctl %s <archive> [flags]\n", command)
		c.Exit(1)
		return "", nil
	}
	return file, flags
}

// buildOptions merges config defaults with command flags.
func (c *CLI) buildOptions(file string, flags map[string]string) (*config.Config, archive.Options, bool) {
	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return nil, archive.Options{}, false
	}

	opts := archive.Options{
		File:        config.ExpandPath(file),
		Password:    cfg.Password(),
		Destination: config.ExpandPath(cfg.Destination),
		Overwrite:   cfg.Overwrite,
	}
	if pw, ok := flags["password"]; ok {
		opts.Password = pw
	}
	if dest, ok := flags["dest"]; ok {
		opts.Destination = config.ExpandPath(dest)
	}
	if flags["overwrite"] != "" {
		opts.Overwrite = true
	}
	return cfg, opts, true
}

// reportArchiveError prints an operation failure and exits non-zero.
func (c *CLI) reportArchiveError(err error) {
	if errors.Is(err, archive.ErrNoFile) {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	var toolErr *archive.ToolError
	if errors.As(err, &toolErr) {
		fmt.Fprintf(c.Err, "%s %v\n", c.red("x"), toolErr)
		if out := strings.TrimSpace(toolErr.Output); out != "" {
			fmt.Fprintf(c.Err, "%s\n", c.gray(out))
		}
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Err, "Error: %v\n", err)
	c.Exit(1)
}
