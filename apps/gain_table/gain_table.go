package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jdginn/go-virtual-venue/venue"
	"github.com/jdginn/go-virtual-venue/venue/config"
)

func run(path string) error {
	cfg, err := config.LoadFromFile(path, config.LoadOptions{
		ValidateImmediately: true,
		ResolvePaths:        true,
		MergeFiles:          true,
	})
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

	src := cfg.BroadcastSource()
	eyeHeight := cfg.Orientation.EyeHeight
	gains := venue.BaselineGains(layout, src, model, eyeHeight)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("seat", "row", "number", "distance (m)", "gain", "dB")
	for _, seat := range layout.Seats() {
		a := venue.NewAnchor(seat, layout.Geometry.FocalPoint, eyeHeight)
		gain := gains[seat.ID]
		t.Row(
			fmt.Sprint(seat.ID),
			fmt.Sprint(seat.Row),
			fmt.Sprint(seat.Number),
			fmt.Sprintf("%.2f", a.Distance(src.Position)),
			fmt.Sprintf("%.3f", gain),
			fmt.Sprintf("%.1f", venue.ToDB(gain)),
		)
	}
	fmt.Println(t.Render())
	return nil
}

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: gain_table <config.yaml>")
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
