// Package cmd - estimate command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"grocery-cost/adapters/pricebook"
	"grocery-cost/core/engine"
	"grocery-cost/core/output"
	"grocery-cost/core/pricing"
	"grocery-cost/core/types"
	"grocery-cost/core/ui"
	"grocery-cost/internal/config"
	"grocery-cost/internal/errors"
	"grocery-cost/internal/logging"
)

var (
	outputFormat  string
	location      string
	people        int
	mealType      string
	mode          string
	diet          string
	menuFile      string
	pricebookFile string
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Build a weekly plan and estimate its cost",
	Long: `Build a seven-day menu, consolidate the shopping list and price it.

The built-in menu is always computed. With --menu, an externally generated
menu (JSON) replaces it when it has a usable weekly shape; otherwise the
built-in menu is kept and the problems are reported.

Examples:
  grocery-cost estimate --location "Medellín" --people 4
  grocery-cost estimate --meal dinner --format json
  grocery-cost estimate --menu week.json --pricebook prices.hcl`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, markdown)")
	estimateCmd.Flags().StringVarP(&location, "location", "l", "", "city, e.g. \"Bogotá, CO\"")
	estimateCmd.Flags().IntVarP(&people, "people", "p", 0, "number of people")
	estimateCmd.Flags().StringVarP(&mealType, "meal", "m", "", "meal type (breakfast, lunch, dinner)")
	estimateCmd.Flags().StringVar(&mode, "mode", "", "time budget per preparation, e.g. 30min")
	estimateCmd.Flags().StringVar(&diet, "diet", "", "dietary constraint, echoed on the plan")
	estimateCmd.Flags().StringVar(&menuFile, "menu", "", "externally generated menu (JSON file)")
	estimateCmd.Flags().StringVar(&pricebookFile, "pricebook", "", "HCL pricebook (default is the embedded one)")
}

func runEstimate(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	stderr := ui.NewWriter(cmd.ErrOrStderr(), noColor || cfg.Output.NoColor)
	if verbose {
		stderr.SetVerbosity(2)
	} else {
		stderr.SetVerbosity(0)
	}

	req, err := buildRequest(cfg)
	if err != nil {
		return err
	}

	formatter, err := selectFormatter(cfg)
	if err != nil {
		return err
	}

	book, err := loadPricebook(cfg)
	if err != nil {
		return err
	}
	if cfg.Pricing.Currency != "" && book.Currency() != cfg.Pricing.Currency {
		stderr.Warning("pricebook currency %s differs from configured %s", book.Currency(), cfg.Pricing.Currency)
	}

	stderr.Info("estimating %s", describeRequest(req))
	eng := engine.New(book, nil, nil).WithLogger(logging.Named("engine"))
	plan := eng.ComputeWeeklyPlan(req)

	logging.Info("weekly plan estimated",
		logging.PlanID(plan.ID),
		logging.Location(plan.Meta.Location),
		zap.String("total", plan.Costs.Total.String()),
		zap.String("menu_source", string(plan.MenuSource)),
	)

	return formatter.Render(cmd.OutOrStdout(), plan)
}

// buildRequest merges flags over configured defaults
func buildRequest(cfg *config.Config) (types.PlanRequest, error) {
	req := types.PlanRequest{
		Location:  cfg.Defaults.Location,
		Headcount: cfg.Defaults.Headcount,
		MealType:  cfg.Defaults.MealType,
		Mode:      cfg.Defaults.Mode,
		Diet:      diet,
		Source:    types.SourceCLI,
	}
	if location != "" {
		req.Location = location
	}
	if people != 0 {
		req.Headcount = people
	}
	if mealType != "" {
		req.MealType = types.ParseMealType(mealType)
	}
	if mode != "" {
		req.Mode = mode
	}

	if err := req.Validate(); err != nil {
		return req, errors.Wrap(errors.TypeInput, "invalid plan request", err)
	}

	if menuFile != "" {
		menu, err := readMenu(menuFile)
		if err != nil {
			return req, err
		}
		req.ExternalMenu = menu
	}
	return req, nil
}

// readMenu decodes a menu file. Unreadable JSON is a usage error; a readable
// menu of the wrong shape is left to reconciliation.
func readMenu(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("menu file", path)
		}
		return nil, errors.Wrap(errors.TypeInput, "reading menu file", err).WithContext("path", path)
	}
	var menu any
	if err := json.Unmarshal(data, &menu); err != nil {
		return nil, errors.Parsing("menu file is not valid JSON", err).WithContext("path", path)
	}
	return menu, nil
}

func selectFormatter(cfg *config.Config) (output.Formatter, error) {
	format := outputFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	registry := output.DefaultRegistry(noColor || cfg.Output.NoColor)
	f, ok := registry.Get(output.Format(strings.ToLower(format)))
	if !ok {
		return nil, errors.Newf(errors.TypeInput, "unknown format %q (available: %v)", format, registry.Formats())
	}
	return f, nil
}

func loadPricebook(cfg *config.Config) (*pricing.Pricebook, error) {
	path := pricebookFile
	if path == "" {
		path = cfg.Pricing.PricebookPath
	}
	book, source, err := pricebook.NewLoader(logging.Named("pricebook")).Load(path)
	if err != nil {
		return nil, err
	}
	logging.Debug("using pricebook", zap.String("file", source.Filename), zap.String("hash", source.Hash.String()))
	return book, nil
}

func describeRequest(req types.PlanRequest) string {
	return fmt.Sprintf("%s, %d people, %s", req.Location, req.Headcount, req.MealType)
}
