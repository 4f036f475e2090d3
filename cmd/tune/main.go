package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tune-go/internal/app"
	"tune-go/internal/config"
	"tune-go/internal/tune"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a TuneApp. The caller must defer app.Close().
// command identifies the CLI command being run (e.g. "Search", "ToggleFavourite").
func newApp(command string) (*app.TuneApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewTuneApp(cfg, defaults["config_path"], command)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "tune",
	Short: "Terminal radio-directory client",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Directory server: %s\n", cfg.Directory.ServerURL)
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Directory server: %s\n", cfg.Directory.ServerURL)
		fmt.Printf("Cache TTL:        %ds\n", cfg.Directory.CacheTTLSec)
		fmt.Printf("Database:         %s (%s)\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Favourites sort:  %s\n", cfg.Favourites.SortBy)
		return nil
	},
}

var configSortCmd = &cobra.Command{
	Use:   "sort ORDER",
	Short: "Set the persisted favourites sort order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SetSortOrder")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.SetSortOrder(args[0]); err != nil {
			tokens := make([]string, 0)
			for _, attr := range tune.SortAttrs() {
				tokens = append(tokens, attr.Token())
			}
			return fmt.Errorf("%w (known orders: %s)", err, strings.Join(tokens, ", "))
		}
		fmt.Printf("Favourites sort order set to %s\n", args[0])
		return nil
	},
}

// search command
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the station directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Search")
		if err != nil {
			return err
		}
		defer a.Close()

		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}

		stations, err := a.Search(context.Background(), filter)
		if err != nil {
			return err
		}

		printStations(a, stations)
		return nil
	},
}

func filterFromFlags(cmd *cobra.Command) (*tune.Filter, error) {
	f := tune.NewFilter()
	flags := cmd.Flags()

	f.Name, _ = flags.GetString("name")
	f.NameExact, _ = flags.GetBool("exact-name")
	f.Country, _ = flags.GetString("country")
	f.CountryExact, _ = flags.GetBool("exact-country")
	f.State, _ = flags.GetString("state")
	f.StateExact, _ = flags.GetBool("exact-state")
	f.Language, _ = flags.GetString("language")
	f.LanguageExact, _ = flags.GetBool("exact-language")
	f.Tag, _ = flags.GetString("tag")
	f.TagExact, _ = flags.GetBool("exact-tag")
	f.TagList, _ = flags.GetStringSlice("tags")
	f.Codec, _ = flags.GetString("codec")
	f.BitrateMin, _ = flags.GetUint64("bitrate-min")
	f.Reverse, _ = flags.GetBool("reverse")
	f.Offset, _ = flags.GetUint64("offset")
	f.Limit, _ = flags.GetUint64("limit")

	if cc, _ := flags.GetString("countrycode"); cc != "" {
		if err := f.SetCountryCode(cc); err != nil {
			return nil, err
		}
	}
	if max, _ := flags.GetUint64("bitrate-max"); max > 0 {
		f.BitrateMax = max
	}
	if orderToken, _ := flags.GetString("order"); orderToken != "" {
		order, ok := tune.ParseOrderBy(orderToken)
		if !ok {
			return nil, fmt.Errorf("unknown order %q", orderToken)
		}
		f.Order = order
	}

	return f, nil
}

// lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup BY TERM",
	Short: "Look stations up through a fixed directory endpoint (byuuid, byname, bytag, topvote, ...)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		by, ok := tune.ParseSearchBy(args[0])
		if !ok {
			return fmt.Errorf("unknown lookup kind %q", args[0])
		}

		a, err := newApp("Lookup")
		if err != nil {
			return err
		}
		defer a.Close()

		stations, err := a.Lookup(context.Background(), by, args[1])
		if err != nil {
			return err
		}

		printStations(a, stations)
		return nil
	},
}

// browse command
var browseCmd = &cobra.Command{
	Use:   "browse CATEGORY",
	Short: "Browse directory categories (countries, countrycodes, codecs, states, languages, tags)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := tune.CategoryKind(args[0])
		known := false
		for _, k := range tune.CategoryKinds() {
			if k == kind {
				known = true
				break
			}
		}
		if !known {
			return fmt.Errorf("unknown category %q", args[0])
		}

		a, err := newApp("Browse")
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.Browse(context.Background(), kind)
		if err != nil {
			return err
		}

		for _, item := range items {
			fmt.Printf("%8d  %s\n", item.StationCount, item.Name)
		}
		return nil
	},
}

// fav command
var favCmd = &cobra.Command{
	Use:   "fav",
	Short: "Manage favourite stations",
	RunE:  listFavourites,
}

var favListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favourite stations",
	RunE:  listFavourites,
}

func listFavourites(cmd *cobra.Command, args []string) error {
	a, err := newApp("ListFavourites")
	if err != nil {
		return err
	}
	defer a.Close()

	stations, err := a.ListFavourites()
	if err != nil {
		return err
	}

	if len(stations) == 0 {
		fmt.Println("No favourites yet.")
		return nil
	}
	printStations(a, stations)
	return nil
}

var favAddCmd = &cobra.Command{
	Use:   "add UUID",
	Short: "Add a directory station to favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddFavourite")
		if err != nil {
			return err
		}
		defer a.Close()

		station, err := a.AddFavourite(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Added favourite: %s\n", station.DisplayName())
		return nil
	},
}

var favRemoveCmd = &cobra.Command{
	Use:   "remove UUID",
	Short: "Remove a station from favourites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("RemoveFavourite")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RemoveFavourite(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed favourite %s\n", args[0])
		return nil
	},
}

var favToggleCmd = &cobra.Command{
	Use:   "toggle UUID",
	Short: "Toggle a station's favourite registration",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ToggleFavourite")
		if err != nil {
			return err
		}
		defer a.Close()

		added, err := a.ToggleFavourite(context.Background(), args[0])
		if err != nil {
			return err
		}
		if added {
			fmt.Printf("Station %s is now a favourite\n", args[0])
		} else {
			fmt.Printf("Station %s is no longer a favourite\n", args[0])
		}
		return nil
	},
}

var favNewCmd = &cobra.Command{
	Use:   "new NAME URL",
	Short: "Register a local station as a favourite",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("NewLocalStation")
		if err != nil {
			return err
		}
		defer a.Close()

		station, err := a.NewLocalStation(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Local station added: %s (%s)\n", station.DisplayName(), station.UUID())
		return nil
	},
}

var favExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export favourites as CSV (stdout when FILE is omitted)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ExportFavourites")
		if err != nil {
			return err
		}
		defer a.Close()

		out := os.Stdout
		if len(args) > 0 {
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("creating export file: %w", err)
			}
			defer f.Close()
			out = f
		}

		n, err := a.ExportFavouritesCSV(out)
		if err != nil {
			return err
		}
		if len(args) > 0 {
			fmt.Printf("Exported %d favourites to %s\n", n, args[0])
		}
		return nil
	},
}

// vote command
var voteCmd = &cobra.Command{
	Use:   "vote UUID",
	Short: "Cast a vote for a station",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Vote")
		if err != nil {
			return err
		}
		defer a.Close()

		receipt, err := a.Vote(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !receipt.OK {
			return fmt.Errorf("vote rejected: %s", receipt.Message)
		}
		fmt.Println("Vote counted.")
		return nil
	},
}

// click command
var clickCmd = &cobra.Command{
	Use:   "click UUID",
	Short: "Register a listen for a station and print its stream URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Click")
		if err != nil {
			return err
		}
		defer a.Close()

		receipt, err := a.Click(context.Background(), args[0])
		if err != nil {
			return err
		}
		if !receipt.OK {
			return fmt.Errorf("click rejected: %s", receipt.Message)
		}
		fmt.Println(receipt.URL)
		return nil
	},
}

// printStations renders a station table, one row per station:
//
//	<flags> <name> <cc> <codec> <bitrate> <uuid>
//
// flags: F favourite, Q queued, L local. Rows truncate to the terminal
// width when stdout is a terminal.
func printStations(a *app.TuneApp, stations []*tune.Station) {
	width := 0
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	for _, s := range stations {
		mask := a.StateMask(s)
		flags := []byte("---")
		if mask&tune.StateFavourite != 0 {
			flags[0] = 'F'
		}
		if mask&tune.StateQueued != 0 {
			flags[1] = 'Q'
		}
		if mask&tune.StateLocal != 0 {
			flags[2] = 'L'
		}

		cc := ""
		if s.CountryCode != nil {
			cc = *s.CountryCode
		}
		codec := ""
		if s.Codec != nil {
			codec = *s.Codec
		}

		line := fmt.Sprintf("%s  %-40.40s %-2s %-6s %4dk  %s",
			flags, s.DisplayName(), cc, codec, s.Bitrate, s.UUID())
		if width > 0 && len(line) > width {
			line = line[:width]
		}
		fmt.Println(line)
	}
}

func init() {
	flags := searchCmd.Flags()
	flags.String("name", "", "Station name (substring match)")
	flags.Bool("exact-name", false, "Match the name exactly")
	flags.String("country", "", "Country name")
	flags.Bool("exact-country", false, "Match the country exactly")
	flags.String("countrycode", "", "Two-letter country code")
	flags.String("state", "", "State/region")
	flags.Bool("exact-state", false, "Match the state exactly")
	flags.String("language", "", "Language")
	flags.Bool("exact-language", false, "Match the language exactly")
	flags.String("tag", "", "Single tag")
	flags.Bool("exact-tag", false, "Match the tag exactly")
	flags.StringSlice("tags", nil, "Tag list; every tag must match")
	flags.String("codec", "", "Audio codec")
	flags.Uint64("bitrate-min", 0, "Minimum bitrate (kbps)")
	flags.Uint64("bitrate-max", 0, "Maximum bitrate (kbps, 0 = unbounded)")
	flags.String("order", "", "Server-side sort order (name, votes, bitrate, ...)")
	flags.Bool("reverse", false, "Reverse the server-side sort order")
	flags.Uint64("offset", 0, "Result offset")
	flags.Uint64("limit", tune.DefaultLimit, "Result limit (0 = no limit)")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configSortCmd)

	favCmd.AddCommand(favListCmd)
	favCmd.AddCommand(favAddCmd)
	favCmd.AddCommand(favRemoveCmd)
	favCmd.AddCommand(favToggleCmd)
	favCmd.AddCommand(favNewCmd)
	favCmd.AddCommand(favExportCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(favCmd)
	rootCmd.AddCommand(voteCmd)
	rootCmd.AddCommand(clickCmd)
}
