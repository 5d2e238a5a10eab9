package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:   "help",
	Short: "Show comprehensive help for latch",
	Long:  `Display detailed help for all latch commands and flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		showCustomHelp()
	},
}

func showCustomHelp() {
	fmt.Print(`
██╗      █████╗ ████████╗ ██████╗██╗  ██╗
██║     ██╔══██╗╚══██╔══╝██╔════╝██║  ██║
██║     ███████║   ██║   ██║     ███████║
██║     ██╔══██║   ██║   ██║     ██╔══██║
███████╗██║  ██║   ██║   ╚██████╗██║  ██║
╚══════╝╚═╝  ╚═╝   ╚═╝    ╚═════╝╚═╝  ╚═╝

latch - breastfeeding timer and log

COMMANDS:

  feed                    Time a feeding with the interactive timer
    -s, --side            Start right away on left|right

    Timer keys:
      l / r         Start on the left / right side
      s / space     Stop (pause) the running timer
      r / space     Resume a stopped timer
      1-5           Toggle #good #medium #bad #cluster #sleepy
      n             Edit notes
      enter         Save the stopped feeding
      x / esc       Discard the feeding
      q             Quit (when idle)

  add [entry]             Log a feeding after the fact
    -s, --side            Side: left|right
    --start               Start time (HH:MM, dd/mm/yyyy HH:MM, 20 minutes ago)
    --end                 End time (default now)
    -d, --duration        Length instead of --end (15m, 1h5m)
    -n, --notes           Notes
    -t, --tags            Comma-separated tags

    Quick syntax:
      latch add "left 15m #good,sleepy dozed off at the end"

  ls                      List feedings, newest first
    -l, --limit           Maximum number to show (default 20)
    -t, --tag             Only feedings with this tag
    -i, --ui              Browse interactively (d deletes)
    --json                JSON output

  edit <id>               Change a feeding; only the flags given are applied
    --side, --start, --end, --notes, --clear-notes, --tags

  rm <id>                 Delete a feeding

  stats                   Today and the last 3, 7 and 30 days
    --json                JSON output

  serve                   Run the HTTP API
    --addr                Listen address (default :8080)
  token [user]            Mint an API bearer token

  version                 Print version information
  help                    Show this help

GLOBAL FLAGS:
  --config                Config file (default ~/.latch/config.yaml)

Settings can also come from LATCH_* environment variables, e.g.
LATCH_USER, LATCH_TIMEZONE, LATCH_DATABASE_DRIVER, LATCH_AUTH_JWT_SECRET.

`)
}
