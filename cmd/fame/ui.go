package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"fameforge/internal/game"

	"github.com/fatih/color"
)

var (
	stdinReader = bufio.NewReader(os.Stdin)
	accent      = color.New(color.FgMagenta, color.Bold)
	success     = color.New(color.FgGreen, color.Bold)
	warn        = color.New(color.FgYellow, color.Bold)
	danger      = color.New(color.FgRed, color.Bold)
	neutral     = color.New(color.FgHiWhite)
)

type chartPayload struct {
	Entries []game.ChartEntry `json:"entries"`
}

func printSuccess(msg string) {
	success.Println(msg)
}

func printWarn(msg string) {
	warn.Println(msg)
}

func printError(msg string) {
	danger.Println(msg)
}

func printInfo(msg string) {
	neutral.Println(msg)
}

func promptRequired(label string) (string, error) {
	for {
		fmt.Printf("%s: ", label)
		text, err := stdinReader.ReadString('\n')
		if err != nil {
			return "", err
		}
		text = strings.TrimSpace(text)
		if text != "" {
			return text, nil
		}
		printWarn(label + " is required.")
	}
}

func promptOptional(label string) (string, error) {
	fmt.Printf("%s: ", label)
	text, err := stdinReader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func promptInt(label string, min, max int) (int, error) {
	for {
		text, err := promptRequired(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			printWarn("Enter a whole number.")
			continue
		}
		if v < min || v > max {
			printWarn(fmt.Sprintf("Value must be between %d and %d.", min, max))
			continue
		}
		return v, nil
	}
}

func renderDashboard(raw map[string]any) error {
	d, err := decodeInto[game.Dashboard](raw)
	if err != nil {
		return err
	}
	if d.Artist == nil {
		printWarn("No artist yet. Run `fame artist` to start a career.")
		return nil
	}

	accent.Printf("\n== %s (%s) | Week %d ==\n", d.Artist.Name, strings.ToUpper(d.Tier), d.Turn)
	fmt.Printf("Fame:        %d\n", d.Artist.Fame)
	fmt.Printf("Skills:      %d\n", d.Artist.Skills)
	fmt.Printf("Reputation:  %d\n", d.Artist.Reputation)
	fmt.Printf("Fanbase:     %d\n", d.Artist.Fanbase)
	fmt.Printf("Money:       $%d\n", d.Artist.Money)
	fmt.Println()
	fmt.Printf("Songs:       %d drafted, %d released, %d on the chart\n", d.DraftedSongs, d.ReleasedSongs, d.ChartingSongs)
	if d.BestPosition != nil {
		fmt.Printf("Best spot:   #%d\n", *d.BestPosition)
	}
	fmt.Printf("Streams:     %d total, $%d earned\n", d.TotalStreams, d.TotalEarnings)
	if d.PendingEvents > 0 {
		warn.Printf("Events:      %d waiting for a decision\n", d.PendingEvents)
	}
	if d.AutoAdvance {
		printInfo("Auto-advance is ON.")
	}
	return nil
}

func renderSongs(st game.State) {
	if len(st.Songs) == 0 {
		printInfo("No songs yet. Run `fame write` to draft one.")
		return
	}
	fmt.Printf("%-36s %-24s %-8s %-9s %6s %10s %9s\n", "ID", "TITLE", "QUALITY", "STATUS", "POS", "STREAMS", "EARNED")
	for _, s := range st.Songs {
		status := "draft"
		pos := "-"
		if s.IsReleased {
			status = "released"
			if s.CurrentChartPosition != nil {
				pos = fmt.Sprintf("#%d", *s.CurrentChartPosition)
			} else {
				pos = "off"
			}
		}
		fmt.Printf("%-36s %-24s %-8s %-9s %6s %10d %9d\n",
			s.ID, truncate(s.Title, 24), s.ProductionQuality, status, pos, s.Sales, s.TotalEarnings)
	}
}

func renderChart(raw map[string]any) error {
	p, err := decodeInto[chartPayload](raw)
	if err != nil {
		return err
	}
	if len(p.Entries) == 0 {
		printInfo("The chart is empty this week.")
		return nil
	}
	accent.Println("\n== TOP 100 ==")
	fmt.Printf("%4s %4s %4s %-26s %-20s %-12s %5s\n", "POS", "LW", "PEAK", "TITLE", "ARTIST", "GENRE", "WKS")
	for _, en := range p.Entries {
		lw := "new"
		if en.LastWeek != nil {
			lw = strconv.Itoa(*en.LastWeek)
		}
		line := fmt.Sprintf("%4d %4s %4d %-26s %-20s %-12s %5d",
			en.Rank, lw, en.Peak, truncate(en.Title, 26), truncate(en.ArtistName, 20), en.Genre, en.WeeksOnChart)
		if en.IsPlayer {
			success.Println(line)
		} else {
			fmt.Println(line)
		}
	}
	return nil
}

func renderEvents(st game.State) {
	if len(st.ActiveEvents) == 0 {
		printInfo("No open events. Run `fame event new` to stir something up.")
		return
	}
	for _, ev := range st.ActiveEvents {
		accent.Printf("\n[%s] week %d\n", ev.ID, ev.TurnTriggered)
		fmt.Println(ev.Description)
		for i, c := range ev.Choices {
			fmt.Printf("  %d) %s\n", i, c)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func decodeInto[T any](in any) (T, error) {
	var out T
	raw, err := json.Marshal(in)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
