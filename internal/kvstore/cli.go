package kvstore

import (
	"fmt"
	"io"
)

const usage = `Usage:
  config set <key> <value>  - Set a configuration key-value pair
  config get <key>          - Get a configuration value by key
  config list               - List all configuration key-value pairs
`

// Run executes one config command line against store and returns the
// process exit code.
func Run(args []string, store *Store, out io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return 1
	}

	switch command := args[0]; command {
	case "set":
		if len(args) != 3 {
			fmt.Fprintln(out, "Usage: config set <key> <value>")
			return 1
		}
		key, value := args[1], args[2]
		if err := store.Set(key, value); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(out, "Configuration set: %s = %s\n", key, value)

	case "get":
		if len(args) != 2 {
			fmt.Fprintln(out, "Usage: config get <key>")
			return 1
		}
		key := args[1]
		value, ok, err := store.Get(key)
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		if !ok {
			fmt.Fprintf(out, "Configuration key '%s' not found.\n", key)
			return 0
		}
		fmt.Fprintf(out, "%s = %s\n", key, value)

	case "list":
		pairs, err := store.List()
		if err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
			return 1
		}
		if len(pairs) == 0 {
			fmt.Fprintln(out, "No configuration found.")
			return 0
		}
		fmt.Fprintln(out, "Current configuration:")
		for _, p := range pairs {
			fmt.Fprintf(out, "  %s: %s\n", p.Key, p.Value)
		}

	default:
		fmt.Fprintf(out, "Unknown command: %s\n", command)
		fmt.Fprintln(out, "Usage: config set <key> <value>, config get <key>, config list")
		return 1
	}

	return 0
}
