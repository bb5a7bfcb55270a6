// Package main is the entry point for the matchstats CLI, which loads one
// soccer match's event and summary files and computes KPIs, timelines, zone
// counts, heatmaps and player radars.
package main

import "github.com/pable/go-match-analytics/cmd"

func main() {
	cmd.Execute()
}
