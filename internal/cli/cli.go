package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Search        *SearchCommand
	Recent        *RecentCommand
	Browsers      *BrowsersCommand
	Favicon       *FaviconCommand
	ClearFavicons *ClearFaviconsCommand
	Open          *OpenCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "browserhist"
	parser.LongDescription = "Search your web-browsing history across browsers, with cached favicons."

	cmds := &commands{
		Search:        &SearchCommand{globals: &globals, version: version},
		Recent:        &RecentCommand{globals: &globals, version: version},
		Browsers:      &BrowsersCommand{globals: &globals, version: version},
		Favicon:       &FaviconCommand{globals: &globals, version: version},
		ClearFavicons: &ClearFaviconsCommand{globals: &globals, version: version},
		Open:          &OpenCommand{globals: &globals, version: version},
	}

	parser.AddCommand("search", "Search browsing history", "Search recent browsing history by title or URL (case-insensitive substring).", cmds.Search)
	parser.AddCommand("recent", "List recent history", "List the most recently visited pages.", cmds.Recent)
	parser.AddCommand("browsers", "Show supported browsers", "Show supported browsers, where their history lives, and favicon cache usage.", cmds.Browsers)
	parser.AddCommand("favicon", "Resolve a favicon", "Print the cached favicon path for a URL, downloading it on first use.", cmds.Favicon)
	parser.AddCommand("clear-favicons", "Delete all cached favicons", "Delete every cached favicon image. Prompts for confirmation unless --force.", cmds.ClearFavicons)
	parser.AddCommand("open", "Open a URL in the default browser", "Open a URL in the system default browser.", cmds.Open)

	return parser, &globals, cmds
}

// Run is the main entry point for the CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("browserhist %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
