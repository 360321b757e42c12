package main

import (
	"fmt"
	"strconv"

	"github.com/mmcdole/swexplorer/internal/config"
	"github.com/mmcdole/swexplorer/internal/search"
	"github.com/spf13/cobra"
)

var pageCmd = &cobra.Command{
	Use:   "page [n]",
	Short: "Print one page of characters",
	Long:  "Fetch a page of the character list (default: ui.default_page) and print it as a table.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPage,
}

var characterCmd = &cobra.Command{
	Use:   "character <id>",
	Short: "Print a character with homeworld, films and vehicles resolved",
	Args:  cobra.ExactArgs(1),
	RunE:  runCharacter,
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Fuzzy-search character names",
	Long:  "Load pages of the character list, then rank the loaded names against the query.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Write the effective configuration to disk",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var (
	searchPages int
	configOut   string
)

func init() {
	searchCmd.Flags().IntVar(&searchPages, "pages", 0, "number of pages to load before searching (0 = all)")
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "output path (default ~/.config/swexplorer/config.yaml)")

	rootCmd.AddCommand(pageCmd, characterCmd, searchCmd, configCmd)
}

func runPage(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	page := a.cfg.UI.DefaultPage
	if len(args) == 1 {
		page, err = strconv.Atoi(args[0])
		if err != nil || page < 1 {
			return fmt.Errorf("invalid page %q: must be a positive integer", args[0])
		}
	}
	return printPage(cmd.Context(), cmd.OutOrStdout(), a.store, page)
}

func runCharacter(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	id := args[0]
	if n, err := strconv.Atoi(id); err != nil || n < 1 {
		return fmt.Errorf("invalid character id %q: must be a positive integer", id)
	}

	resolveErr := a.store.FetchCharacter(cmd.Context(), id)
	c, ok := a.store.GetCharacterByID(id)
	if !ok {
		return fmt.Errorf("character %s could not be loaded", id)
	}

	printCharacter(cmd.OutOrStdout(), c)
	if resolveErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", resolveErr)
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	errOut := cmd.ErrOrStderr()
	err = a.store.FetchPages(cmd.Context(), searchPages, func(loaded, total int) {
		fmt.Fprintf(errOut, "\rLoading characters: page %d/%d", loaded, total)
	})
	fmt.Fprintln(errOut)
	if err != nil {
		// Search whatever loaded before the failure
		fmt.Fprintf(errOut, "Warning: %v\n", err)
	}

	results := search.NewService(a.store, a.logger).Rank(args[0])
	if len(results) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No characters match %q\n", args[0])
		return nil
	}
	printCharacters(cmd.OutOrStdout(), results)
	return nil
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	path := configOut
	if path == "" {
		path = configFile
	}
	written, err := config.SaveConfig(cfg, path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", written)
	return nil
}
