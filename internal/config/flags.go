package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// ErrUsage marks a command line that could not be understood.
var ErrUsage = errors.New("usage error")

// Flags holds the parsed command line.
type Flags struct {
	Config   string
	Output   string
	Save     bool
	Preview  bool
	Headless bool
	Size     int
	Filter   string
	Debug    bool
	LogFile  string

	MetallicPath  string
	RoughnessPath string

	set map[string]bool
}

// IsSet reports whether the named flag appeared on the command line.
func (f *Flags) IsSet(name string) bool {
	return f.set[name]
}

// ParseFlags parses args (without the program name). Help requests return
// flag.ErrHelp; any other problem wraps ErrUsage.
func ParseFlags(name string, args []string, output io.Writer) (*Flags, error) {
	f := &Flags{set: make(map[string]bool)}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.Config, "config", "", "Path to config file")
	fs.StringVar(&f.Output, "o", "", "Write the packed texture to this file (.png, .jpg, .bmp, .tif)")
	fs.BoolVar(&f.Save, "save", false, "Write the packed texture next to the metallic map as <name>_mr.png")
	fs.BoolVar(&f.Preview, "preview", true, "Show the packed texture in a window")
	fs.BoolVar(&f.Headless, "headless", false, "Never open a window")
	fs.IntVar(&f.Size, "size", 0, "Preview window size in pixels")
	fs.StringVar(&f.Filter, "filter", "", "Preview sampling filter: nearest or linear")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFile, "log-file", "", "Also write logs to this file")
	fs.Usage = func() {
		fmt.Fprintf(output, "Usage: %s [flags] <metallic_path> <roughness_path>\n\n", name)
		fmt.Fprintln(output, "Packs a metallic and a roughness map into one glTF texture")
		fmt.Fprintln(output, "(R = 255, G = roughness, B = metallic).")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	if fs.NArg() != 2 {
		fs.Usage()
		return nil, fmt.Errorf("%w: expected 2 arguments (metallic_path roughness_path), got %d", ErrUsage, fs.NArg())
	}
	f.MetallicPath = fs.Arg(0)
	f.RoughnessPath = fs.Arg(1)

	return f, nil
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config, f *Flags) {
	if f == nil {
		return
	}
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.IsSet("preview") {
		cfg.Preview.Enabled = f.Preview
	}
	if f.Headless {
		cfg.Preview.Enabled = false
	}
	if f.Size > 0 {
		cfg.Preview.Width = f.Size
		cfg.Preview.Height = f.Size
	}
	if f.Filter != "" {
		cfg.Preview.Filter = f.Filter
	}
	if f.Output != "" {
		cfg.Output.Path = f.Output
	}
	if f.Save {
		cfg.Output.Save = true
	}
}
