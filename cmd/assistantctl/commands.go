// In file: cmd/assistantctl/commands.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dileep-u-k/assistant-gateway/internal/app"
	"github.com/dileep-u-k/assistant-gateway/internal/fixtures"
	"github.com/dileep-u-k/assistant-gateway/internal/nlu"
	"github.com/dileep-u-k/assistant-gateway/internal/orchestrator"
	"github.com/dileep-u-k/assistant-gateway/internal/tools"
	compversion "github.com/dileep-u-k/assistant-gateway/internal/version"
)

func askCmd(st *cliState) *cobra.Command {
	var stream bool

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Classify a message and print the assistant's reply",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := app.New(cmd.Context(), st.cfg, st.log)
			if err != nil {
				return err
			}
			defer services.Close()

			text := strings.Join(args, " ")
			intent := services.Classifier.Classify(text)
			out := cmd.OutOrStdout()

			if stream {
				chunks := services.Orchestrator.RespondStream(cmd.Context(), text)
				if st.asJSON {
					return printStreamJSON(out, intent, chunks)
				}
				fmt.Fprintf(out, "intent: %s %v\n", intent.Tag, intent.Slots())
				return printStream(out, chunks)
			}

			reply := services.Orchestrator.Compose(cmd.Context(), intent)
			if st.asJSON {
				return writeJSON(out, map[string]any{
					"intent":   intent.Tag,
					"slots":    intent.Slots(),
					"response": reply,
				})
			}
			fmt.Fprintf(out, "intent: %s %v\n", intent.Tag, intent.Slots())
			fmt.Fprintln(out, reply)
			return nil
		},
	}
	cmd.Flags().BoolVar(&stream, "stream", false, "Print the reply chunk by chunk")
	return cmd
}

func printStream(w io.Writer, chunks <-chan orchestrator.Chunk) error {
	for chunk := range chunks {
		if chunk.Type == orchestrator.ChunkDone {
			_, err := fmt.Fprintln(w)
			return err
		}
		if _, err := io.WriteString(w, chunk.Content); err != nil {
			return err
		}
	}
	return nil
}

// printStreamJSON writes one JSON object per line: the intent first, then every
// chunk as it would appear on the SSE endpoint.
func printStreamJSON(w io.Writer, intent nlu.Intent, chunks <-chan orchestrator.Chunk) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(map[string]any{"intent": intent.Tag, "slots": intent.Slots()}); err != nil {
		return err
	}
	for chunk := range chunks {
		if err := enc.Encode(chunk); err != nil {
			return err
		}
	}
	return nil
}

func invokeCmd(st *cliState) *cobra.Command {
	var (
		pairs   []string
		rawJSON string
	)

	cmd := &cobra.Command{
		Use:   "invoke <domain> <tool>",
		Short: "Call one tool directly and print its result envelope",
		Long: `Call one tool directly and print its result envelope.

Arguments come from --args as a JSON object, from repeated --arg key=value
pairs, or both; --arg wins on conflicts. Numeric values given as key=value are
converted to the parameter's type by the tool.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			toolArgs, err := parseToolArgs(rawJSON, pairs)
			if err != nil {
				return err
			}

			services, err := app.New(cmd.Context(), st.cfg, st.log)
			if err != nil {
				return err
			}
			defer services.Close()

			res := services.Invoker.Invoke(cmd.Context(), args[0], args[1], toolArgs)
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringArrayVar(&pairs, "arg", nil, "Tool argument as key=value (repeatable)")
	cmd.Flags().StringVar(&rawJSON, "args", "", "Tool arguments as a JSON object")
	return cmd
}

// parseToolArgs merges a JSON object with key=value pairs.
func parseToolArgs(rawJSON string, pairs []string) (tools.Args, error) {
	args := tools.Args{}
	if strings.TrimSpace(rawJSON) != "" {
		if err := json.Unmarshal([]byte(rawJSON), &args); err != nil {
			return nil, fmt.Errorf("--args must be a JSON object: %w", err)
		}
	}
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("--arg %q: expected key=value", p)
		}
		args[key] = value
	}
	return args, nil
}

func toolsCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List every domain and its tools",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := app.New(cmd.Context(), st.cfg, st.log)
			if err != nil {
				return err
			}
			defer services.Close()

			catalog := services.Invoker.Catalog()
			if st.asJSON {
				return writeJSON(cmd.OutOrStdout(), catalog)
			}
			printCatalog(cmd.OutOrStdout(), catalog)
			return nil
		},
	}
}

func printCatalog(w io.Writer, catalog map[string][]tools.ToolDescriptor) {
	domains := make([]string, 0, len(catalog))
	for d := range catalog {
		domains = append(domains, d)
	}
	sort.Strings(domains)

	for _, d := range domains {
		fmt.Fprintf(w, "%s\n", d)
		for _, td := range catalog[d] {
			names := make([]string, 0, len(td.Params))
			for _, p := range td.Params {
				if p.Required {
					names = append(names, p.Name)
				} else {
					names = append(names, "["+p.Name+"]")
				}
			}
			fmt.Fprintf(w, "  %-24s %s  (%s)\n", td.Name, td.Description, strings.Join(names, ", "))
		}
	}
}

func seedCmd(st *cliState) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write fixture accounts into the Redis ledger",
		Long: `Write fixture accounts into the Redis ledger at REDIS_ADDR.

Without --reset only accounts missing from Redis are written, so balances left
by earlier payments survive. With --reset every account is restored to its
fixture balance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !st.cfg.UsesRedis() {
				return fmt.Errorf("REDIS_ADDR is not set; the in-memory ledger needs no seeding")
			}

			catalog, err := fixtures.Load(st.cfg.FixturesFile)
			if err != nil {
				return err
			}

			rdb, store, err := app.OpenRedisLedger(cmd.Context(), st.cfg, st.log)
			if err != nil {
				return err
			}
			defer rdb.Close()

			n, err := store.Seed(cmd.Context(), catalog.Accounts, reset)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d accounts into %s\n", n, len(catalog.Accounts), st.cfg.RedisAddr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Overwrite existing balances")
	return cmd
}

func versionCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the CLI and component versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if st.asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"version":    version,
					"components": compversion.ComponentVersions,
					"summary":    compversion.Summary(),
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "assistantctl %s (%s)\n", version, compversion.Summary())
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
