// Command elf-config is the key-value configuration command of the elf
// suite. Build it into <suite>/elf-config/impl to make it available as
// "elf config".
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atinylittleshell/elf/internal/kvstore"
	"github.com/atinylittleshell/elf/internal/styles"
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:   "config <set|get|list> [args...]",
		Short: "Read and write elf configuration values",
		// The original argument grammar is positional; cobra only wires the
		// command up.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := os.Getenv("ELF_CONFIG_FILE")
			if path == "" {
				var err error
				path, err = kvstore.DefaultPath()
				if err != nil {
					return err
				}
			}
			exitCode = kvstore.Run(args, kvstore.New(path), cmd.OutOrStdout())
			return nil
		},
	}
	rootCmd.SetArgs(args)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR("Error: "+err.Error()))
		return 1
	}
	return exitCode
}
