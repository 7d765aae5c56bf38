// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// convertCommand is the main pipeline: setlist URLs in, playlists out
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Aliases:   []string{"run"},
		Usage:     "Convert setlist.fm URLs into Spotify playlists",
		ArgsUsage: "[urls...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "File containing setlist URLs (one per line)",
			},
			&cli.BoolFlag{
				Name:    "public",
				Aliases: []string{"p"},
				Usage:   "Create public playlists (default: private)",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable verbose logging",
			},
		},
		Action: r.Convert,
	}
}

// authCommand handles the Spotify OAuth2 authorization flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:    "public",
				Aliases: []string{"p"},
				Usage:   "Request the public playlist-modify scope",
			},
		},
		Action: r.Auth,
	}
}

// setlistCommand handles setlist page operations without touching Spotify
func setlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setlist",
		Usage: "Setlist page operations",
		Commands: []*cli.Command{
			{
				Name:  "inspect",
				Usage: "Fetch a setlist page and print the extracted record",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "url",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Export to file (.csv, .md, .json, .txt by extension)",
					},
				},
				Action: r.SetlistInspect,
			},
		},
	}
}

// spotifyCommand handles one-off Spotify operations
func spotifyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "spotify",
		Aliases: []string{"spot"},
		Usage:   "Spotify session operations",
		Commands: []*cli.Command{
			{
				Name:  "search",
				Usage: "Search for a single track",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Artist name for the field-qualified query",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "track",
						Usage:    "Track title for the field-qualified query",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SpotifySearch,
			},
			{
				Name:   "whoami",
				Usage:  "Show the authenticated Spotify user",
				Action: r.SpotifyWhoami,
			},
		},
	}
}
