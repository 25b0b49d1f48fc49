package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brewmatch/internal/aliases"
	"github.com/brewmatch/internal/catalog"
	"github.com/brewmatch/internal/config"
	"github.com/brewmatch/internal/matcher"
	"github.com/brewmatch/internal/units"
	"github.com/brewmatch/internal/web"
)

var settings config.Settings

func main() {
	settings = config.Load()

	rootCmd := &cobra.Command{
		Use:   "brewmatch",
		Short: "Brewing ingredient identity resolution",
		Long:  `Resolves free-form brewing ingredient names against a product catalog and proposes ranked substitutes`,
	}

	rootCmd.AddCommand(createResolveCmd())
	rootCmd.AddCommand(createSubstitutesCmd())
	rootCmd.AddCommand(createColorCmd())
	rootCmd.AddCommand(createAliasCmd())
	rootCmd.AddCommand(createServeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// openSource picks the catalog backend: Postgres when a database URL is
// configured, otherwise the JSON file.
func openSource(catalogPath string) (catalog.Source, error) {
	if settings.DatabaseURL != "" {
		return catalog.OpenPostgres(settings.DatabaseURL)
	}
	if catalogPath == "" {
		catalogPath = settings.CatalogPath
	}
	return catalog.NewFileSource(catalogPath), nil
}

func closeSource(source catalog.Source) {
	if closer, ok := source.(interface{ Close() error }); ok {
		closer.Close()
	}
}

type resolveFlags struct {
	catalogPath   string
	supplier      string
	lab           string
	productCode   string
	colorLovibond float64
	minScore      float64
	withStock     bool
	asJSON        bool
	debugTrace    bool
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.catalogPath, "catalog", "", "path to the JSON catalog file")
	cmd.Flags().StringVar(&f.supplier, "supplier", "", "supplier/maltster hint")
	cmd.Flags().StringVar(&f.lab, "lab", "", "yeast lab hint")
	cmd.Flags().StringVar(&f.productCode, "product-code", "", "yeast product code hint")
	cmd.Flags().Float64Var(&f.colorLovibond, "color-lovibond", 0, "malt color hint in degrees Lovibond")
	cmd.Flags().Float64Var(&f.minScore, "min-score", 0, "override the acceptance threshold")
	cmd.Flags().BoolVar(&f.withStock, "stock", false, "include stock quantities in the output")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "emit the raw result as JSON")
	cmd.Flags().BoolVar(&f.debugTrace, "debug", false, "trace the matching cascade")
}

func (f *resolveFlags) query(name string) matcher.IngredientQuery {
	query := matcher.IngredientQuery{
		Name: name,
		Hints: matcher.QueryHints{
			Supplier:    f.supplier,
			Lab:         f.lab,
			ProductCode: f.productCode,
		},
	}
	if f.colorLovibond > 0 {
		lovibond := f.colorLovibond
		query.Hints.ColorLovibond = &lovibond
	}
	return query
}

func (f *resolveFlags) engine(source catalog.Source) *matcher.Engine {
	opts := matcher.Options{
		MinScore:      settings.MinScore,
		ToleranceEBC:  settings.ToleranceEBC,
		MaxAlternates: settings.MaxAlternates,
		Debug:         f.debugTrace || settings.Debug,
	}
	if f.minScore > 0 {
		opts.MinScore = f.minScore
	}
	if f.withStock {
		if stockSource, ok := source.(catalog.StockSource); ok {
			stock, err := stockSource.Stock(context.Background())
			if err != nil {
				log.Printf("stock unavailable: %v", err)
			} else {
				opts.IncludeStock = true
				opts.Stock = stock
			}
		}
	}
	return matcher.NewEngine(opts)
}

func createResolveCmd() *cobra.Command {
	flags := &resolveFlags{}
	cmd := &cobra.Command{
		Use:   "resolve [name]",
		Short: "Resolve an ingredient name against the catalog",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runMatch(flags, strings.Join(args, " "), false)
		},
	}
	flags.register(cmd)
	return cmd
}

func createSubstitutesCmd() *cobra.Command {
	flags := &resolveFlags{}
	cmd := &cobra.Command{
		Use:   "substitutes [name]",
		Short: "Find substitutes for an unavailable ingredient",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			runMatch(flags, strings.Join(args, " "), true)
		},
	}
	flags.register(cmd)
	return cmd
}

func runMatch(flags *resolveFlags, name string, substitutes bool) {
	source, err := openSource(flags.catalogPath)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer closeSource(source)

	entries, err := source.Entries(context.Background())
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	engine := flags.engine(source)
	query := flags.query(name)

	var result matcher.MatchResult
	if substitutes {
		result = engine.FindSubstitutes(query, entries)
	} else {
		result = engine.Resolve(query, entries)
	}

	if flags.asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode result: %v", err)
		}
		fmt.Println(string(out))
		return
	}
	printResult(name, result)
}

func printResult(name string, result matcher.MatchResult) {
	if !result.Found {
		fmt.Printf("No match for %q\n", name)
	} else {
		best := result.BestMatch
		fmt.Printf("Best match: %s (%.1f, %s)\n", best.CandidateName, best.Score, best.Type)
		if best.Details.Warning != "" {
			fmt.Printf("  Warning: %s\n", best.Details.Warning)
		}
		if best.StockAmount != nil {
			fmt.Printf("  In stock: %.2f\n", *best.StockAmount)
		}
		if result.RequiresConfirmation {
			fmt.Println("  Confirmation required before applying")
		}
	}

	if len(result.Alternatives) > 0 {
		fmt.Println("Alternatives:")
		for _, alt := range result.Alternatives {
			fmt.Printf("  %-40s %.1f (%s)\n", alt.CandidateName, alt.Score, alt.Type)
		}
	}
	if len(result.Suggestions) > 0 {
		fmt.Println("Suggestions:")
		for _, sug := range result.Suggestions {
			fmt.Printf("  %-40s %.1f (%s)\n", sug.CandidateName, sug.Score, sug.Type)
			if sug.Details.Warning != "" {
				fmt.Printf("    %s\n", sug.Details.Warning)
			}
		}
	}
}

// createColorCmd converts between malt color scales.
func createColorCmd() *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "color [value]",
		Short: "Convert a malt color value between scales",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var value float64
			if _, err := fmt.Sscanf(args[0], "%f", &value); err != nil {
				log.Fatalf("Invalid color value %q", args[0])
			}

			var lovibond, ebc, srm float64
			switch strings.ToLower(from) {
			case "lovibond", "l":
				lovibond = value
				ebc = units.LovibondToEBC(value)
				srm = units.EBCToSRM(ebc)
			case "ebc":
				ebc = value
				lovibond = units.EBCToLovibond(value)
				srm = units.EBCToSRM(value)
			case "srm":
				srm = value
				ebc = units.SRMToEBC(value)
				lovibond = units.EBCToLovibond(ebc)
			default:
				log.Fatalf("Unknown scale %q (use lovibond, ebc, or srm)", from)
			}

			fmt.Printf("Lovibond: %.1f\nEBC: %.1f\nSRM: %.1f\n", lovibond, ebc, srm)
		},
	}
	cmd.Flags().StringVar(&from, "from", "lovibond", "input scale: lovibond, ebc, or srm")
	return cmd
}

// createAliasCmd inspects the ingredient alias table.
func createAliasCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "alias [name]",
		Short: "Show the canonical name for an ingredient",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			name := strings.Join(args, " ")
			fmt.Printf("Canonical: %s\n", aliases.Canonical(name))

			if completions := aliases.Suggest(name, limit); len(completions) > 0 {
				fmt.Println("Completions:")
				for _, c := range completions {
					fmt.Printf("  %s\n", c)
				}
			}
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of completions")
	return cmd
}

func createServeCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolution API over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			source, err := openSource(catalogPath)
			if err != nil {
				log.Fatalf("Failed to open catalog: %v", err)
			}

			engine := matcher.NewEngine(matcher.Options{
				MinScore:      settings.MinScore,
				ToleranceEBC:  settings.ToleranceEBC,
				MaxAlternates: settings.MaxAlternates,
				Debug:         settings.Debug,
			})

			server := web.NewServer(settings, engine, source)
			if err := server.Start(); err != nil {
				log.Fatalf("Server failed: %v", err)
			}
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "path to the JSON catalog file")
	return cmd
}
