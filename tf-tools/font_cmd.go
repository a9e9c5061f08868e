package main

import (
	"fmt"

	"github.com/npillmayer/termfont/engine"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runFamiliesCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	r := mustRasterizer(flags)
	names := r.Collection().FamilyNames()
	if mustFlagBool(flags["verbose"], "verbose") {
		fmt.Printf("Families (%d):\n", len(names))
	}
	for _, name := range names {
		fmt.Println(name)
	}
}

func runMetricsCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	r := mustRasterizer(flags)
	key, size := mustLoadFont(r, args, flags)
	m, err := r.Metrics(key, size)
	if err != nil {
		fatalf("%v", err)
	}
	desc, _ := r.FontDesc(key)
	face, err := r.FaceName(key)
	if err != nil {
		fatalf("%v", err)
	}
	pterm.Info.Printf("Font with %s (%s) at %.1fpt, device pixel ratio %.2f\n", desc, face, size.AsPoints(), r.DevicePixelRatio())
	data := [][]string{
		{"Metric", "Value"},
		{"average advance", fmt.Sprintf("%.3f px", m.AverageAdvance)},
		{"line height", fmt.Sprintf("%.3f px", m.LineHeight)},
	}
	if mustFlagBool(flags["verbose"], "verbose") {
		if fm, ok := designMetrics(r.Collection(), desc.Name, flags); ok {
			data = append(data,
				[]string{"units per em", fmt.Sprintf("%d", fm.DesignUnitsPerEm)},
				[]string{"ascent", fmt.Sprintf("%d", fm.Ascent)},
				[]string{"descent", fmt.Sprintf("%d", fm.Descent)},
				[]string{"line gap", fmt.Sprintf("%d", fm.LineGap)},
				[]string{"cap height", fmt.Sprintf("%d", fm.CapHeight)},
				[]string{"x height", fmt.Sprintf("%d", fm.XHeight)},
			)
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// designMetrics looks up the face for the style flags directly in the
// collection, for printing font-wide design metrics.
func designMetrics(coll engine.Collection, family string, flags map[string]commando.FlagValue) (engine.FontMetrics, bool) {
	fam, err := coll.FamilyByName(family)
	if err != nil {
		return engine.FontMetrics{}, false
	}
	weight, style := engine.FontWeightRegular, engine.FontStyleNormal
	if mustFlagBool(flags["bold"], "bold") {
		weight = engine.FontWeightBold
	}
	if mustFlagBool(flags["italic"], "italic") {
		style = engine.FontStyleItalic
	}
	face, err := fam.FirstMatchingFace(weight, engine.FontStretchNormal, style)
	if err != nil {
		return engine.FontMetrics{}, false
	}
	return face.Metrics(), true
}
