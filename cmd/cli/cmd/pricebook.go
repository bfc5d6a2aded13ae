// Package cmd - pricebook inspection commands
package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"grocery-cost/adapters/pricebook"
	"grocery-cost/core/catalog"
	"grocery-cost/core/determinism"
	"grocery-cost/core/output"
	"grocery-cost/core/pricing"
	"grocery-cost/core/types"
	"grocery-cost/core/ui"
	"grocery-cost/internal/config"
	"grocery-cost/internal/logging"
)

var pricebookCmd = &cobra.Command{
	Use:   "pricebook",
	Short: "Inspect and validate pricebooks",
	Long: `Pricebook commands.

A pricebook is an HCL file with city multipliers, item prices, category
averages, synonyms and stores. Without a file the embedded Colombian
pricebook is used.

Both show and validate check the pricebook against the built-in category
catalog and list catalog words that only get category-average prices.`,
}

var pricebookShowCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print the contents of a pricebook",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPricebookShow,
}

var pricebookValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a pricebook for errors",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPricebookValidate,
}

var pricebookExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the embedded pricebook as a starting point for a custom one",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := cmd.OutOrStdout().Write(pricebook.DefaultSource())
		return err
	},
}

func init() {
	pricebookCmd.AddCommand(pricebookShowCmd)
	pricebookCmd.AddCommand(pricebookValidateCmd)
	pricebookCmd.AddCommand(pricebookExportCmd)
}

// pricebookArg picks the positional file, then the configured one
func pricebookArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.Get().Pricing.PricebookPath
}

func runPricebookShow(cmd *cobra.Command, args []string) error {
	book, source, err := pricebook.NewLoader(logging.Named("pricebook")).Load(pricebookArg(args))
	if err != nil {
		return err
	}

	out := ui.NewWriter(cmd.OutOrStdout(), noColor || config.Get().Output.NoColor)
	currency := book.Currency()

	out.Header("Pricebook")
	out.Println("File:     %s", source.Filename)
	out.Println("Hash:     %s", source.Hash.String())
	out.Println("Currency: %s", currency)

	out.Header("Cities")
	cities := out.NewTable("Key", "Multiplier").AlignRight(1)
	for _, c := range book.Cities() {
		cities.AddRow(c.Key, c.Multiplier.String())
	}
	cities.Render()

	out.Header("Items")
	items := out.NewTable("Item", "Price", "Per").AlignRight(1)
	for _, it := range book.Items() {
		items.AddRow(it.Name, output.Money(it.Price, currency), string(it.Unit))
	}
	items.Render()

	out.Header("Category Averages")
	rates := out.NewTable("Category", "Per kg", "Per l", "Per unit").AlignRight(1).AlignRight(2).AlignRight(3)
	for _, c := range types.Categories {
		r, ok := book.CategoryRate(c)
		if !ok {
			continue
		}
		rates.AddRow(string(c),
			output.OptionalMoney(r.PerKg, currency),
			output.OptionalMoney(r.PerL, currency),
			output.OptionalMoney(r.PerUnit, currency))
	}
	rates.Render()

	out.Header("Synonyms")
	synonyms := book.Synonyms()
	syn := out.NewTable("Variant", "Canonical")
	for _, v := range determinism.SortedKeys(synonyms) {
		syn.AddRow(v, synonyms[v])
	}
	syn.Render()

	out.Header("Stores")
	stores := out.NewTable("Store", "Kind")
	for _, s := range book.Stores() {
		stores.AddRow(s.Name, string(s.Kind))
	}
	stores.Render()

	out.Header("Catalog")
	cat := catalog.NewDefault()
	stats := cat.Stats()
	out.Println("%d lists, %d words, %d keyword rules", stats.Lists, stats.Words, stats.Rules)
	unpriced := unpricedWords(book, cat)
	coverage := out.NewTable("Category", "Words", "Without item").AlignRight(1).AlignRight(2)
	for _, c := range types.Categories {
		if stats.WordsByCategory[c] == 0 {
			continue
		}
		coverage.AddRow(string(c), strconv.Itoa(stats.WordsByCategory[c]), strconv.Itoa(len(unpriced[c])))
	}
	coverage.Render()
	for _, c := range types.Categories {
		if len(unpriced[c]) > 0 {
			out.Warning("%s without item: %s", c, strings.Join(unpriced[c], ", "))
		}
	}

	return out.Err()
}

func runPricebookValidate(cmd *cobra.Command, args []string) error {
	book, source, err := pricebook.NewLoader(logging.Named("pricebook")).Load(pricebookArg(args))
	if err != nil {
		return err
	}

	out := ui.NewWriter(cmd.OutOrStdout(), noColor || config.Get().Output.NoColor)
	out.Success("%s is valid", source.Filename)
	out.Println("  %d cities, %d items, %d synonyms, %d stores",
		len(book.Cities()), len(book.Items()), len(book.Synonyms()), len(book.Stores()))
	out.Println("  hash %s", book.Hash())

	cat := catalog.NewDefault()
	stats := cat.Stats()
	missing := 0
	for _, words := range unpricedWords(book, cat) {
		missing += len(words)
	}
	out.Println("  catalog: %d words, %d without a pricebook item", stats.Words, missing)
	return out.Err()
}

// unpricedWords lists, per category, the catalog words with no exact
// pricebook item. Those ingredients are priced from category averages.
func unpricedWords(book *pricing.Pricebook, cat *catalog.Catalog) map[types.Category][]string {
	out := make(map[types.Category][]string)
	for _, c := range types.Categories {
		for _, word := range cat.Words(c) {
			if _, ok := book.Item(word); !ok {
				out[c] = append(out[c], word)
			}
		}
	}
	return out
}
