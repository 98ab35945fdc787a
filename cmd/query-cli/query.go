package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fplchat/query-engine/pkg/engine"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query [text]",
		Short: "Run a single query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}

			resp, err := eng.Query(cmd.Context(), engine.NewSessionID(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if outputJSON {
				return printJSON(resp)
			}
			printResponse(resp)
			return nil
		},
	}
}

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive session with conversation memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := buildEngine(cmd.Context())
			if err != nil {
				return err
			}

			sessionID := engine.NewSessionID()
			printInfo("Session " + sessionID[:8] + " — type a question, 'clear' to forget, 'quit' to exit")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print(promptColor.Sprint("> "))
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())

				switch line {
				case "":
					continue
				case "quit", "exit":
					return nil
				case "clear":
					if err := eng.ClearSession(cmd.Context(), sessionID); err != nil {
						printWarn(err.Error())
						continue
					}
					printInfo("Session cleared")
					continue
				}

				resp, err := eng.Query(cmd.Context(), sessionID, line)
				if err != nil {
					printWarn(err.Error())
					continue
				}

				if outputJSON {
					if err := printJSON(resp); err != nil {
						return err
					}
					continue
				}
				printResponse(resp)
			}
		},
	}
}
