// Command rasoi-report builds production and shopping reports from a
// menu-plan document, offline. It prints one scaling sheet per menu item and
// a combined ingredient report across all of them.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"rasoi/internal/aggregation"
	"rasoi/internal/config"
	"rasoi/internal/diagnostics"
	"rasoi/internal/grouping"
	"rasoi/internal/logging"
	"rasoi/internal/models"
	"rasoi/internal/scaling"
	"rasoi/internal/units"
)

var (
	configFile    = flag.String("config", "", "Path to configuration file")
	menuFile      = flag.String("menu", "", "Path to menu-plan YAML document")
	splitMeals    = flag.Bool("split-meals", false, "Report meal slots separately instead of combining them")
	splitKitchens = flag.Bool("split-kitchens", false, "Report kitchens separately instead of combining them")
	mealFilter    = flag.String("meals", "", "Comma-separated meal slots to include (default all)")
	kitchenFilter = flag.String("kitchens", "", "Comma-separated kitchen ids to include (default all)")
	servingAmount = flag.Float64("serving-amount", 0, "Per-person serving amount (default per meal slot)")
	servingUnit   = flag.String("serving-unit", "g", "Unit for -serving-amount")
)

func main() {
	flag.Parse()
	if *menuFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	defer logger.Sync()

	// The unit table is a build-time constant; a configured replacement that
	// fails to load is a fatal configuration error.
	table := units.DefaultTable()
	if cfg.UnitTableFile != "" {
		table, err = units.LoadTable(cfg.UnitTableFile)
		if err != nil {
			logger.Fatal("failed to load unit table", zap.Error(err))
		}
	}

	registry := prometheus.NewRegistry()
	if err := diagnostics.Register(registry); err != nil {
		logger.Fatal("failed to register diagnostics", zap.Error(err))
	}
	collector := diagnostics.NewCollector(logger)
	conv := units.NewConverter(table, collector)

	plan, err := models.LoadMenuPlan(*menuFile)
	if err != nil {
		logger.Fatal("failed to load menu plan", zap.Error(err))
	}
	logger.Info("menu plan loaded",
		zap.String("file", *menuFile),
		zap.Int("menu_items", len(plan.MenuItems)),
	)

	scaler := scaling.NewScaler(conv)
	for _, item := range plan.MenuItems {
		result, err := scaler.ScaleMenuItem(item, servingFor(item, cfg))
		if err != nil {
			// A bad menu item degrades the report, it does not fail it.
			logger.Error("skipping menu item",
				zap.String("recipe", item.Recipe.Name),
				zap.String("kitchen", item.Kitchen.Name),
				zap.Error(err),
			)
			continue
		}
		printScalingSheet(item, result)
	}

	opts := aggregation.Options{
		CombineMealTypes: cfg.Report.CombineMealTypes && !*splitMeals,
		CombineKitchens:  cfg.Report.CombineKitchens && !*splitKitchens,
		SelectedKitchens: splitList(*kitchenFilter),
	}
	for _, m := range splitList(*mealFilter) {
		opts.SelectedMealTypes = append(opts.SelectedMealTypes, models.MealType(m))
	}

	combiner := aggregation.NewCombiner(conv, collector, logger)
	rows := combiner.Combine(plan.MenuItems, opts)
	printCombinedReport(rows, aggregation.Summarize(rows, opts))

	if events := collector.Events(); len(events) > 0 {
		logger.Warn("data quality events recorded", zap.Int("count", len(events)))
	}
}

// servingFor resolves the per-person serving for a menu item: explicit flag
// first, configured per-slot default second, compiled-in recommendation last.
func servingFor(item models.MenuItem, cfg *config.Config) scaling.ServingSize {
	if *servingAmount > 0 {
		return scaling.ServingSize{Amount: *servingAmount, Unit: *servingUnit}
	}
	if grams, ok := cfg.Report.ServingDefaults[string(item.MealType)]; ok && grams > 0 {
		return scaling.ServingSize{Amount: grams, Unit: "g"}
	}
	return scaling.DefaultServing(item.MealType)
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printScalingSheet(item models.MenuItem, result scaling.ScalingResult) {
	fmt.Printf("\n%s / %s (%s, ghan %.2f)\n",
		item.Kitchen.Name, item.Recipe.Name, item.MealType, item.GhanFactor)

	byName := make(map[string]scaling.ScaledIngredient, len(result.Ingredients))
	for _, si := range result.Ingredients {
		byName[si.Name] = si
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	ingredients := item.EffectiveIngredients()
	if grouping.HasCustomGroups(item.IngredientGroups) {
		buckets := grouping.Group(ingredients, item.IngredientGroups)
		for _, name := range grouping.SortedGroupNames(buckets) {
			fmt.Fprintf(w, "%s\t\t\t\n", name)
			for _, ing := range buckets[name].Ingredients {
				printIngredientLine(w, byName[ing.Name])
			}
		}
	} else {
		for _, si := range result.Ingredients {
			printIngredientLine(w, si)
		}
	}
	w.Flush()

	fmt.Printf("  total weight %.0f g, cost %.2f, persons/ghan %.1f, persons %.1f, cost/person %.2f\n",
		result.TotalWeightGrams, result.TotalCost,
		result.PersonsPerGhan, result.TotalPersons, result.CostPerPerson)
}

func printIngredientLine(w *tabwriter.Writer, si scaling.ScaledIngredient) {
	fmt.Fprintf(w, "  %s\t%.2f %s\t%.0f g\t%.2f\n", si.Name, si.Quantity, si.Unit, si.Grams, si.Cost)
}

func printCombinedReport(rows []aggregation.CombinedIngredient, summary aggregation.Summary) {
	fmt.Printf("\nCombined ingredient report (%d rows, %d ingredients, total cost %.2f)\n",
		summary.TotalRows, summary.UniqueIngredientNames, summary.TotalCost)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(w, "  %s\t%.2f %s\t%.2f\t%d sources\n",
			row.Name, row.TotalQuantity, row.Unit, row.TotalCost, len(row.Sources))
	}
	w.Flush()
}
