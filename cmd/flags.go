package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-match-analytics/internal/filter"
)

// criteriaFlags binds the filter flags shared by the listing commands.
type criteriaFlags struct {
	matchID       string
	team          string
	player        string
	eventType     string
	eventCategory string
	zone          string
}

func (f *criteriaFlags) register(cmd *cobra.Command, events bool) {
	cmd.Flags().StringVar(&f.matchID, "match", "", "match id")
	cmd.Flags().StringVar(&f.team, "team", "", "team name (exact)")
	if !events {
		return
	}
	cmd.Flags().StringVar(&f.player, "player", "", "player name (case-insensitive, whole words)")
	cmd.Flags().StringVar(&f.eventType, "type", "", "event type, e.g. Pass, Shot")
	cmd.Flags().StringVar(&f.eventCategory, "category", "", "event category, e.g. Pass, Duel")
	cmd.Flags().StringVar(&f.zone, "zone", "", "tactical zone code R1C1..R3C3")
}

func (f *criteriaFlags) criteria() filter.Criteria {
	return filter.FromMap(map[string]string{
		"match_id":       f.matchID,
		"team":           f.team,
		"player":         f.player,
		"event_type":     f.eventType,
		"event_category": f.eventCategory,
		"zone":           f.zone,
	})
}

// printJSON writes v indented to stdout, used by every --json flag.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
