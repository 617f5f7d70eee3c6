package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	cl "fameforge/internal/cli"
	"fameforge/internal/config"
	"fameforge/internal/game"

	"github.com/spf13/cobra"
)

func main() {
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "fame",
		Short:        "FameForge CLI game client",
		SilenceUsage: true,
	}

	root.AddCommand(
		newSignupCmd(&apiBase),
		newLoginCmd(&apiBase),
		newLogoutCmd(),
		newArtistCmd(&apiBase),
		newDashCmd(&apiBase),
		newSongsCmd(&apiBase),
		newWriteCmd(&apiBase),
		newInvestCmd(&apiBase),
		newReleaseCmd(&apiBase),
		newAlbumCmd(&apiBase),
		newChartCmd(&apiBase),
		newActivityCmd(&apiBase),
		newAdvanceCmd(&apiBase),
		newAutoCmd(&apiBase),
		newEventCmd(&apiBase),
		newDraftsCmd(&apiBase),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func requireSession() (cl.Session, error) {
	session, err := cl.LoadSession()
	if err != nil {
		return cl.Session{}, fmt.Errorf("not logged in, run `fame login` first: %w", err)
	}
	return session, nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newSignupCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "signup",
		Short: "Create a FameForge account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			password, err := promptRequired("Password")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			session, err := newClient(apiBase).Signup(ctx, email, password)
			if err != nil {
				return err
			}
			if strings.TrimSpace(session.AccessToken) == "" {
				printWarn("Signup created. Verify email, then run `fame login`.")
				return nil
			}
			if err := cl.SaveSession(cl.Session{
				AccessToken:  session.AccessToken,
				RefreshToken: session.RefreshToken,
				Email:        session.User.Email,
				UserID:       session.User.ID,
			}); err != nil {
				return err
			}
			printSuccess("Signup complete. Session saved.")
			return nil
		},
	}
}

func newLoginCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Login to FameForge",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := promptRequired("Email")
			if err != nil {
				return err
			}
			password, err := promptRequired("Password")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			session, err := newClient(apiBase).Login(ctx, email, password)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{
				AccessToken:  session.AccessToken,
				RefreshToken: session.RefreshToken,
				Email:        session.User.Email,
				UserID:       session.User.ID,
			}); err != nil {
				return err
			}
			printSuccess("Logged in as " + session.User.Email)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Session cleared.")
			return nil
		},
	}
}

func newArtistCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "artist",
		Short: "Start a new career (replaces any existing save)",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			name, err := promptRequired("Artist name")
			if err != nil {
				return err
			}
			genre, err := promptRequired("Genre")
			if err != nil {
				return err
			}
			gender, err := promptOptional("Gender (optional)")
			if err != nil {
				return err
			}
			backstory, err := promptOptional("Backstory (optional)")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).CreateArtist(ctx, session.AccessToken, name, gender, genre, backstory)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Career started for %v. The grind begins.", out["name"]))
			return nil
		},
	}
}

func newDashCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dash",
		Short: "Show the career dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Dashboard(ctx, session.AccessToken)
			if err != nil {
				return err
			}
			return renderDashboard(out)
		},
	}
}

func newSongsCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "songs",
		Short: "List your songs",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			raw, err := newClient(apiBase).State(ctx, session.AccessToken)
			if err != nil {
				return err
			}
			st, err := decodeInto[game.State](raw)
			if err != nil {
				return err
			}
			renderSongs(st)
			return nil
		},
	}
}

func newWriteCmd(apiBase *string) *cobra.Command {
	var forge bool
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Draft a new song",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			title, err := promptRequired("Title")
			if err != nil {
				return err
			}
			theme, err := promptOptional("Theme")
			if err != nil {
				return err
			}
			style, err := promptOptional("Style")
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			client := newClient(apiBase)

			song := map[string]any{"title": title, "theme": theme, "style": style}
			if forge {
				forged, err := client.ForgeSong(ctx, session.AccessToken, title, theme, "", style)
				if err != nil {
					return err
				}
				ideas, err := decodeInto[struct {
					Suggestions []string `json:"lyric_suggestions"`
					Beat        string   `json:"beat_description"`
				}](forged)
				if err != nil {
					return err
				}
				song["lyrics"] = strings.Join(ideas.Suggestions, "\n")
				song["beat"] = ideas.Beat
				printInfo("Lyrics and beat sketched.")
			}
			out, err := client.AddSong(ctx, session.AccessToken, song)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Drafted %q (%v).", title, out["id"]))
			return nil
		},
	}
	cmd.Flags().BoolVar(&forge, "forge", false, "generate lyrics and a beat sketch")
	return cmd
}

func newInvestCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "invest <song-id> <Medium|High>",
		Short: "Upgrade a song's production quality",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Invest(ctx, session.AccessToken, args[0], args[1])
			if err != nil {
				return err
			}
			if applied, ok := out["applied"].(bool); ok && !applied {
				printWarn(fmt.Sprintf("No change: %v", out["reason"]))
				return nil
			}
			printSuccess(fmt.Sprintf("Production upgraded, $%v spent.", out["debit"]))
			return nil
		},
	}
}

func newReleaseCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "release <song-id>",
		Short: "Release a drafted song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Release(ctx, session.AccessToken, args[0])
			if err != nil {
				return err
			}
			if applied, ok := out["applied"].(bool); ok && !applied {
				printWarn(fmt.Sprintf("No change: %v", out["reason"]))
				return nil
			}
			printSuccess(fmt.Sprintf("Released! %v initial streams, $%v earned.", out["initial_streams"], out["earnings"]))
			return nil
		},
	}
}

func newAlbumCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "album <title> <song-id>...",
		Short: "Group songs into an album",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).AddAlbum(ctx, session.AccessToken, args[0], "Album", args[1:])
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Album %q created (%v).", args[0], out["id"]))
			return nil
		},
	}
}

func newChartCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Show this week's Top 100",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Chart(ctx, session.AccessToken)
			if err != nil {
				return err
			}
			return renderChart(out)
		},
	}
}

func newActivityCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "activity [activity-id]",
		Short: "Pick this week's training activity (no argument clears it)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if _, err := newClient(apiBase).SelectActivity(ctx, session.AccessToken, id); err != nil {
				return err
			}
			if id == "" {
				printSuccess("Activity cleared.")
			} else {
				printSuccess("Activity set: " + id)
			}
			return nil
		},
	}
}

func newAdvanceCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "advance",
		Short: "Advance one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).AdvanceTurn(ctx, session.AccessToken)
			if err != nil {
				return err
			}
			sum, err := decodeInto[game.TurnSummary](out)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Week %d. Streams: %d ($%d).", sum.Turn, sum.WeeklyStreams, sum.StreamEarnings))
			if sum.ActivityApplied {
				printInfo(fmt.Sprintf("Training done ($%d).", sum.ActivityCost))
			}
			if sum.NPCSongSpawned {
				printInfo("A rival dropped a new single this week.")
			}
			return nil
		},
	}
}

func newAutoCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "auto <on|off>",
		Short: "Toggle worker-driven weekly turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := requireSession()
			if err != nil {
				return err
			}
			var enabled bool
			switch strings.ToLower(args[0]) {
			case "on":
				enabled = true
			case "off":
				enabled = false
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if _, err := newClient(apiBase).SetAutoAdvance(ctx, session.AccessToken, enabled); err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Auto-advance %s.", args[0]))
			return nil
		},
	}
}

func newEventCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Career events",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Show open events",
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := requireSession()
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				raw, err := newClient(apiBase).State(ctx, session.AccessToken)
				if err != nil {
					return err
				}
				st, err := decodeInto[game.State](raw)
				if err != nil {
					return err
				}
				renderEvents(st)
				return nil
			},
		},
		&cobra.Command{
			Use:   "new",
			Short: "Generate a new career event",
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := requireSession()
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				out, err := newClient(apiBase).GenerateEvent(ctx, session.AccessToken)
				if err != nil {
					return err
				}
				ev, err := decodeInto[game.ActiveEvent](out)
				if err != nil {
					return err
				}
				accent.Printf("\n[%s]\n", ev.ID)
				fmt.Println(ev.Description)
				for i, c := range ev.Choices {
					fmt.Printf("  %d) %s\n", i, c)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "resolve <event-id>",
			Short: "Resolve an open event",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := requireSession()
				if err != nil {
					return err
				}
				choice, err := promptInt("Choice (0-2)", 0, 2)
				if err != nil {
					return err
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				out, err := newClient(apiBase).ResolveEvent(ctx, session.AccessToken, args[0], choice)
				if err != nil {
					return err
				}
				if applied, ok := out["applied"].(bool); ok && !applied {
					printWarn(fmt.Sprintf("No change: %v", out["reason"]))
					return nil
				}
				printSuccess("Event resolved.")
				return nil
			},
		},
	)
	return cmd
}

func newDraftsCmd(apiBase *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "Offline song drafts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add",
			Short: "Sketch a song offline",
			RunE: func(cmd *cobra.Command, args []string) error {
				title, err := promptRequired("Title")
				if err != nil {
					return err
				}
				theme, err := promptOptional("Theme")
				if err != nil {
					return err
				}
				style, err := promptOptional("Style")
				if err != nil {
					return err
				}
				if err := cl.PushDraft(cl.Draft{Title: title, Theme: theme, Style: style}); err != nil {
					return err
				}
				printSuccess("Draft queued.")
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "Show queued drafts",
			RunE: func(cmd *cobra.Command, args []string) error {
				drafts, err := cl.LoadDrafts()
				if err != nil {
					return err
				}
				if len(drafts) == 0 {
					printInfo("No queued drafts.")
					return nil
				}
				for i, d := range drafts {
					fmt.Printf("%2d. %-24s theme=%s style=%s\n", i+1, truncate(d.Title, 24), d.Theme, d.Style)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "sync",
			Short: "Push queued drafts to the server",
			RunE: func(cmd *cobra.Command, args []string) error {
				session, err := requireSession()
				if err != nil {
					return err
				}
				drafts, err := cl.LoadDrafts()
				if err != nil {
					return err
				}
				if len(drafts) == 0 {
					printInfo("Nothing to sync.")
					return nil
				}
				ctx, cancel := commandContext(cmd)
				defer cancel()
				client := newClient(apiBase)
				var kept []cl.Draft
				for _, d := range drafts {
					_, err := client.AddSong(ctx, session.AccessToken, map[string]any{
						"title":  d.Title,
						"theme":  d.Theme,
						"genre":  d.Genre,
						"style":  d.Style,
						"lyrics": d.Lyrics,
						"beat":   d.Beat,
					})
					if err != nil {
						printError(fmt.Sprintf("%q failed: %v", d.Title, err))
						kept = append(kept, d)
						continue
					}
					printSuccess(fmt.Sprintf("%q synced.", d.Title))
				}
				if kept == nil {
					kept = []cl.Draft{}
				}
				return cl.SaveDrafts(kept)
			},
		},
	)
	return cmd
}
