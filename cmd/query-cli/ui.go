package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"

	"github.com/fplchat/query-engine/pkg/engine"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	labelColor  = color.New(color.FgWhite, color.Bold)
	valueColor  = color.New(color.FgGreen)
	warnColor   = color.New(color.FgYellow)
	dimColor    = color.New(color.Faint)
	promptColor = color.New(color.FgMagenta, color.Bold)
)

func startSpinner(msg string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + msg
	s.Start()
	return s
}

func printInfo(msg string) {
	dimColor.Fprintln(os.Stderr, msg)
}

func printWarn(msg string) {
	warnColor.Fprintln(os.Stderr, msg)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printResponse(resp *engine.Response) {
	headerColor.Printf("\nintent: %s", resp.Context.Intent)
	dimColor.Printf("  (confidence %.2f)\n", resp.Context.Confidence)

	if resp.Resolved {
		labelColor.Print("resolved: ")
		fmt.Println(resp.ResolvedQuery)
	}
	if resp.Context.RankedBy != "" {
		labelColor.Print("ranked by: ")
		fmt.Println(resp.Context.RankedBy)
	}
	if resp.Context.Strategy != "" {
		labelColor.Print("strategy: ")
		fmt.Println(resp.Context.Strategy)
	}

	for _, p := range resp.Context.Players {
		valueColor.Printf("  %-18s", p.Name)
		fmt.Printf(" %-11s %-15s £%.1fm  %3d pts  %2d G  %2d A  form %.1f  owned %.1f%%\n",
			p.Position, p.Team, p.Price, p.TotalPoints, p.Goals, p.Assists, p.Form, p.Ownership)
	}

	for _, f := range resp.Context.Fixtures {
		valueColor.Printf("  GW%-3d", f.Gameweek)
		fmt.Printf(" %s v %s  %s\n", f.Home, f.Away, f.Kickoff.Format("Mon 02 Jan 15:04"))
	}

	for _, rule := range resp.Context.Rules {
		valueColor.Printf("  [%s] ", rule.Topic)
		fmt.Println(rule.Text)
	}

	for _, u := range resp.Context.Unavailable {
		warnColor.Printf("  %s is %s\n", u.Name, u.Reason)
	}
	for _, a := range resp.Context.Ambiguous {
		warnColor.Printf("  %q could be: ", a.Candidate)
		fmt.Println(joinStrings(a.Options))
	}
	for _, n := range resp.Context.NotFound {
		warnColor.Printf("  no player matching %q", n.Candidate)
		if len(n.Suggestions) > 0 {
			fmt.Printf("  (did you mean %s?)", joinStrings(n.Suggestions))
		}
		fmt.Println()
	}

	if resp.Cached {
		dimColor.Println("  (cached)")
	}
	fmt.Println()
}

func joinStrings(ss []string) string {
	out := ""
	for i, s := range ss {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
