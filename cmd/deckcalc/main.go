// deckcalc computes the material takeoff for a deck project file: board count,
// substructure lengths, footing placement, fasteners and, in pro mode, an
// exact cutting plan with offcut reuse.
//
// Build:
//
//	go build -o deckcalc ./cmd/deckcalc
//
// Usage:
//
//	deckcalc -project deck.json [-plan-dxf floor.dxf] [-out result.json]
//	         [-pdf cutplan.pdf] [-labels labels.pdf] [-xlsx bom.xlsx]
//	         [-dxf layout.dxf] [-save deck.json] [-config config.json]
//	deckcalc -new "Backyard deck" -plan-dxf floor.dxf -save deck.json
//
// Application defaults (product, rules, fastening, recent projects) live in
// the config file, ~/.deckcalc/config.json unless -config overrides it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/piwi3910/deckcalc/internal/engine"
	"github.com/piwi3910/deckcalc/internal/export"
	"github.com/piwi3910/deckcalc/internal/importer"
	"github.com/piwi3910/deckcalc/internal/model"
	"github.com/piwi3910/deckcalc/internal/project"
	"github.com/piwi3910/deckcalc/internal/stairs"
)

func main() {
	projectPath := flag.String("project", "", "project JSON file")
	newName := flag.String("new", "", "create a project with this name from the configured defaults")
	configPath := flag.String("config", "", "application config file (default ~/.deckcalc/config.json)")
	planDXF := flag.String("plan-dxf", "", "replace the project polygon with a DXF floor plan")
	outPath := flag.String("out", "", "write computed quantities as JSON")
	pdfPath := flag.String("pdf", "", "write the cutting plan as PDF (pro mode)")
	labelsPath := flag.String("labels", "", "write QR board labels as PDF (pro mode)")
	xlsxPath := flag.String("xlsx", "", "write the bill of materials as an Excel workbook")
	dxfPath := flag.String("dxf", "", "write the structure layout as DXF")
	savePath := flag.String("save", "", "save the project with its result to this path")
	flag.Parse()

	if (*projectPath == "") == (*newName == "") {
		fmt.Fprintln(os.Stderr, "exactly one of -project or -new is required")
		flag.Usage()
		os.Exit(2)
	}

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	var proj model.Project
	if *newName != "" {
		proj = model.NewProject(*newName)
		cfg.ApplyToProject(&proj)
	} else {
		proj, err = project.Load(*projectPath)
		if err != nil {
			log.Fatalf("load project: %v", err)
		}
		cfg.RememberProject(*projectPath)
	}

	if *planDXF != "" {
		imported, err := importer.ImportFloorPlan(*planDXF)
		if err != nil {
			log.Fatalf("import floor plan: %v", err)
		}
		for _, w := range imported.Warnings {
			log.Printf("floor plan: %s", w)
		}
		proj.Plan.Polygon = imported.Polygon
	}

	eng := engine.New(proj.Rules)
	eng.Stairs = stairs.Calculate
	quantities := eng.Compute(proj.Plan, proj.Product, proj.Fastening)
	proj.Result = &quantities

	printSummary(proj.Name, quantities)

	if *outPath != "" {
		data, err := json.MarshalIndent(quantities, "", "  ")
		if err != nil {
			log.Fatalf("marshal quantities: %v", err)
		}
		if err := os.WriteFile(*outPath, data, 0644); err != nil {
			log.Fatalf("write quantities: %v", err)
		}
	}
	if *pdfPath != "" {
		if quantities.CutPlan == nil {
			log.Fatal("no cutting plan: set rules.mode to \"pro\"")
		}
		if err := export.CutPlanPDF(*pdfPath, *quantities.CutPlan, proj.Name); err != nil {
			log.Fatalf("export cut plan PDF: %v", err)
		}
	}
	if *labelsPath != "" {
		if quantities.CutPlan == nil {
			log.Fatal("no cutting plan: set rules.mode to \"pro\"")
		}
		if err := export.BoardLabels(*labelsPath, *quantities.CutPlan); err != nil {
			log.Fatalf("export board labels: %v", err)
		}
	}
	if *xlsxPath != "" {
		if err := export.BillOfMaterials(*xlsxPath, proj); err != nil {
			log.Fatalf("export bill of materials: %v", err)
		}
	}
	if *dxfPath != "" {
		if quantities.Layout == nil {
			log.Fatal("no structure layout to export")
		}
		if err := export.LayoutDXF(*dxfPath, proj.Plan, *quantities.Layout); err != nil {
			log.Fatalf("export layout DXF: %v", err)
		}
	}
	if *savePath != "" {
		if err := project.Save(*savePath, cfg.PrepareForSave(proj)); err != nil {
			log.Fatalf("save project: %v", err)
		}
		cfg.RememberProject(*savePath)
	}

	if err := project.SaveAppConfig(cfgPath, cfg); err != nil {
		log.Printf("save config: %v", err)
	}
}

func printSummary(name string, q model.Quantities) {
	fmt.Printf("%s\n", name)
	fmt.Printf("  deck area:    %.2f m2 (cutouts %.2f m2)\n", q.Area.DeckM2, q.Area.CutoutsM2)
	fmt.Printf("  boards:       %d x %.0f mm (%.1f m laid, loss %.0f%%)\n",
		q.Boards.Pieces, q.Boards.StockLengthMm, q.Boards.UsedLengthMm/1000, q.Boards.LossRate*100)
	fmt.Printf("  bearers:      %.1f m\n", q.Substructure.BearerLengthMm/1000)
	fmt.Printf("  joists:       %.1f m (+%.1f m rim)\n",
		q.Substructure.JoistLengthMm/1000, q.Substructure.RimJoistLengthMm/1000)
	fmt.Printf("  footings:     %d\n", q.FootingQty)
	fmt.Printf("  fasteners:    %d (%s)\n", q.Fasteners.Qty, q.Fasteners.Mode)
	if q.Ledger != nil {
		fmt.Printf("  ledger:       %.2f m, %d anchor bolts\n", q.Ledger.LengthM, q.Ledger.AnchorBoltsQty)
	}
	if q.Posts != nil {
		fmt.Printf("  posts:        %d x %.0f mm\n", q.Posts.Qty, q.Posts.LengthMm)
	}
	if q.Stairs != nil {
		fmt.Printf("  stairs:       %d steps, %d treads, %d stringers\n",
			q.Stairs.StepCount, q.Stairs.TreadBoardsQty, q.Stairs.StringerQty)
	}
	if q.CutPlan != nil {
		fmt.Printf("  cutting plan: %d courses, %d boards to purchase\n",
			len(q.CutPlan.Rows), q.CutPlan.BoardsPurchased())
	}
}
