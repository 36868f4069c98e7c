package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/jdginn/go-virtual-venue/interact"
	"github.com/jdginn/go-virtual-venue/internal/log"
	"github.com/jdginn/go-virtual-venue/playback"
	"github.com/jdginn/go-virtual-venue/venue"
	"github.com/jdginn/go-virtual-venue/venue/config"
	"github.com/jdginn/go-virtual-venue/venue/experiment"
)

type Globals struct {
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`
	RunsDir   string `name:"runs-dir" default:"runs" type:"path" help:"Where layout and sweep write their output"`
}

var CLI struct {
	Globals

	Validate ValidateCmd `cmd:"" help:"Check a venue config"`
	Layout   LayoutCmd   `cmd:"" help:"Generate the seat catalog and a seat map"`
	Sweep    SweepCmd    `cmd:"" help:"Plot gain against head yaw for one seat"`
	Init     InitCmd     `cmd:"" help:"Write the default venue config"`
	View     ViewCmd     `cmd:"" help:"Sit in the venue from the terminal"`
}

func loadConfig(path string, validate bool) (*config.VenueConfig, error) {
	return config.LoadFromFile(path, config.LoadOptions{
		ValidateImmediately: validate,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
}

type ValidateCmd struct {
	Config string `arg:"" name:"config" type:"existingfile" help:"venue config to check"`
}

func (c ValidateCmd) Run(g *Globals) error {
	cfg, err := loadConfig(c.Config, false)
	if err != nil {
		return err
	}
	errs := cfg.Validate()
	errs = append(errs, config.NewPathResolver(c.Config).CheckSideFiles(cfg)...)
	if len(errs) > 0 {
		fmt.Print(config.FormatValidationErrors(errs))
		return fmt.Errorf("%s has %d problems", c.Config, len(errs))
	}
	layout, err := venue.Generate(cfg.Geometry())
	if err != nil {
		return err
	}
	if _, err := cfg.Model(); err != nil {
		return err
	}
	fmt.Printf("%s: %d seats in %d rows\n", c.Config, layout.Len(), layout.Rows())
	return nil
}

type LayoutCmd struct {
	Config string `arg:"" name:"config" type:"existingfile" help:"venue config"`
	Size   int    `name:"size" default:"1000" help:"seat map size in pixels"`
}

func (c LayoutCmd) Run(g *Globals) error {
	cfg, err := loadConfig(c.Config, true)
	if err != nil {
		return err
	}
	layout, err := venue.Generate(cfg.Geometry())
	if err != nil {
		return err
	}

	run, err := experiment.CreateRunDirectory(g.RunsDir)
	if err != nil {
		return err
	}
	if err := run.CopyConfigFile(c.Config); err != nil {
		return err
	}

	src := cfg.BroadcastSource()
	if err := venue.SaveCatalog(run.FilePath("seats.json"), layout, src); err != nil {
		return err
	}
	seatMap := venue.SeatMap{
		Layout:   layout,
		Source:   src,
		Selected: cfg.Session.InitialSeat,
		XSize:    c.Size,
		YSize:    c.Size,
		Margin:   float64(c.Size) / 20,
	}
	if err := seatMap.SavePNG(run.FilePath("seats.png")); err != nil {
		return err
	}

	log.Info("layout written", "run", run.ID, "seats", layout.Len())
	fmt.Println(run.Path)
	return nil
}

type SweepCmd struct {
	Config string `arg:"" name:"config" type:"existingfile" help:"venue config"`
	Seat   int    `name:"seat" required:"" help:"seat id to sweep"`
	Steps  int    `name:"steps" default:"181" help:"number of yaw offsets to sample"`
}

func (c SweepCmd) Run(g *Globals) error {
	cfg, err := loadConfig(c.Config, true)
	if err != nil {
		return err
	}
	layout, err := venue.Generate(cfg.Geometry())
	if err != nil {
		return err
	}
	model, err := cfg.Model()
	if err != nil {
		return err
	}
	seat, ok := layout.Seat(c.Seat)
	if !ok {
		return fmt.Errorf("seat %d: %w", c.Seat, venue.ErrUnknownSeat)
	}

	params := cfg.ControllerParams()
	anchor := venue.NewAnchor(seat, layout.Geometry.FocalPoint, params.EyeHeight)
	points, err := venue.Sweep(anchor, cfg.BroadcastSource(), model, params.Limits, c.Steps)
	if err != nil {
		return err
	}

	run, err := experiment.CreateRunDirectory(g.RunsDir)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("Seat %s", seat.Label())
	if err := venue.PlotSweep(points, title, run.FilePath("sweep.png")); err != nil {
		return err
	}

	s := venue.Summarize(points)
	fmt.Printf("seat %s (#%d), %.1f m from the source\n", seat.Label(), seat.ID, anchor.Distance(cfg.BroadcastSource().Position))
	fmt.Printf("  loudest at %+.1f°: %.3f (%.1f dB)\n", venue.Degrees(s.Best), s.Max, venue.ToDB(s.Max))
	fmt.Printf("  quietest: %.3f (%.1f dB)\n", s.Min, venue.ToDB(s.Min))
	fmt.Printf("  mean: %.3f\n", s.Mean)
	fmt.Println(run.FilePath("sweep.png"))
	return nil
}

type InitCmd struct {
	Path  string `arg:"" name:"path" help:"where to write the config"`
	Force bool   `name:"force" help:"overwrite an existing file"`
}

func (c InitCmd) Run(g *Globals) error {
	if _, err := os.Stat(c.Path); err == nil && !c.Force {
		return fmt.Errorf("%s already exists, use --force to overwrite", c.Path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := config.SaveToFile(config.Default(), c.Path); err != nil {
		return err
	}
	fmt.Println(c.Path)
	return nil
}

type ViewCmd struct {
	Config string `arg:"" name:"config" type:"existingfile" help:"venue config"`
	Seat   int    `name:"seat" help:"seat id to start in, overrides the config"`
	Audio  string `name:"audio" type:"existingfile" help:"wav or mp3 to play as the broadcast, overrides the config"`
}

func (c ViewCmd) Run(g *Globals) error {
	cfg, err := loadConfig(c.Config, true)
	if err != nil {
		return err
	}
	if c.Seat != 0 {
		cfg.Session.InitialSeat = c.Seat
	}

	// The terminal belongs to the alt screen until the program exits.
	run, err := experiment.CreateRunDirectory(g.RunsDir)
	if err != nil {
		return err
	}
	restore, err := logToFile(g, run.FilePath("view.log"))
	if err != nil {
		return err
	}
	defer restore()
	fmt.Fprintln(os.Stderr, "logging to", run.FilePath("view.log"))

	var opts []venue.SessionOption
	audio := cfg.Playback.Audio
	if c.Audio != "" {
		audio = c.Audio
	}
	if audio != "" {
		player, err := playback.Start(audio, 0)
		if err != nil {
			return err
		}
		defer player.Close()
		log.Info("playing", "audio", audio, "sample_rate", int(player.Format().SampleRate))
		opts = append(opts, venue.WithSink(player))
	}

	session, err := cfg.Build(opts...)
	if err != nil {
		return err
	}
	return interact.Run(session, cfg.Session.TickHz)
}

// logToFile sends the global logger to path until the returned func puts it back on stderr.
func logToFile(g *Globals, path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}
	log.Init(f, g.LogLevel, g.LogFormat)
	return func() {
		log.Init(os.Stderr, g.LogLevel, g.LogFormat)
		f.Close()
	}, nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("venue"),
		kong.Description("Seat layouts, head tracking and positional audio for a virtual venue."),
		kong.UsageOnError(),
	)
	log.Init(os.Stderr, CLI.LogLevel, CLI.LogFormat)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
