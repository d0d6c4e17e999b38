package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	Convert ConvertCmd       `cmd:"" default:"withargs" help:"Convert OHH JSON hand records to PokerStars text"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("ohh2stars"),
		kong.Description("Converts Open Hand History (OHH) JSON records to the PokerStars text dialect"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
