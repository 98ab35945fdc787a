package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fplchat/query-engine/pkg/engine"
)

// demoQueries exercises each intent once, including a pronoun follow-up.
var demoQueries = []string{
	"hello!",
	"How much does Haaland cost?",
	"How many goals does he have?",
	"who has the most assists",
	"best midfielders under £8m",
	"what are Arsenal's next 3 fixtures",
	"how many points for a clean sheet",
	"give me some differentials",
	"Salah or Saka for captain?",
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted conversation through the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}

			sessionID := engine.NewSessionID()
			for _, q := range demoQueries {
				promptColor.Printf("> %s\n", q)

				resp, err := eng.Query(cmd.Context(), sessionID, q)
				if err != nil {
					return fmt.Errorf("query %q: %w", q, err)
				}
				printResponse(resp)
			}
			return nil
		},
	}
}
