package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pable/go-match-analytics/internal/config"
	"github.com/pable/go-match-analytics/internal/store"
)

const playersCSV = `match_id,player,team,position,total_touches,passes_attempted,passes_successful,pass_accuracy,duels_won,duel_success_rate,shots_on_target,shot_accuracy,recoveries
1,John Smith,Home,Central Midfielder,64,40,34,85.0,5,62.5,1,50,6
1,Ana Lima,Away,Goalkeeper,30,20,15,75,,,0,,2
`

const teamsCSV = `match_id,team,pass_accuracy,conversion_rate,possession,formation
1,Home,84.2,12.5,55,4-3-3
1,Away,78.9,,45,
`

const eventsCSV = `match_id,minute,second,player,team,event_type,event_category,outcome,x,y,zone_3x3,is_successful
1,3,12,John Smith,Home,Pass,Pass,Progressive Pass,45.5,30,R1C2,True
1,7,,John Smith,Home,Shot,Shot,On Target,88,52,R2C3,1

1,9,40,Ana Lima,Away,Recovery,Recovery,,,,,False
`

func TestReadPlayers(t *testing.T) {
	players, err := ReadPlayers(strings.NewReader(playersCSV))
	require.NoError(t, err)
	require.Len(t, players, 2)

	p := players[0]
	assert.Equal(t, 1, p.MatchID)
	assert.Equal(t, "John Smith", p.Player)
	assert.Equal(t, 64, p.TotalTouches)
	assert.Equal(t, 85.0, p.PassAccuracy)
	assert.Equal(t, 62.5, p.DuelSuccessRate)
	assert.Equal(t, 6, p.Recoveries)

	assert.Zero(t, players[1].DuelsWon)
	assert.Zero(t, players[1].ShotAccuracy)
}

func TestReadTeams_KeepsRawColumns(t *testing.T) {
	teams, err := ReadTeams(strings.NewReader(teamsCSV))
	require.NoError(t, err)
	require.Len(t, teams, 2)

	home := teams[0]
	assert.Equal(t, "Home", home.Team)
	assert.Equal(t, 84.2, home.PassAccuracy)
	assert.Equal(t, 55.0, home.Fields["possession"])
	assert.Equal(t, "4-3-3", home.Fields["formation"])
	assert.Equal(t, 1.0, home.Fields["match_id"])

	away := teams[1]
	assert.Nil(t, away.Fields["conversion_rate"])
	assert.Contains(t, away.Fields, "formation")
	assert.Nil(t, away.Fields["formation"])
}

func TestReadEvents(t *testing.T) {
	events, err := ReadEvents(strings.NewReader(eventsCSV))
	require.NoError(t, err)
	require.Len(t, events, 3, "blank line skipped")

	pass := events[0]
	require.NotNil(t, pass.Second)
	assert.Equal(t, 12, *pass.Second)
	assert.True(t, pass.HasCoords)
	assert.Equal(t, 45.5, pass.X)
	assert.Equal(t, "R1C2", pass.Zone)
	assert.True(t, pass.IsSuccessful)
	assert.Equal(t, "Progressive Pass", pass.Outcome)

	shot := events[1]
	assert.Nil(t, shot.Second)
	assert.True(t, shot.IsSuccessful)

	rec := events[2]
	assert.False(t, rec.HasCoords)
	assert.Empty(t, rec.Zone)
	assert.False(t, rec.IsSuccessful)
}

func TestReadEvents_EmptyInput(t *testing.T) {
	_, err := ReadEvents(strings.NewReader(""))
	assert.True(t, errors.Is(err, ErrEmptyHeader))
}

func TestReadSummaries(t *testing.T) {
	one, err := ReadSummaries(strings.NewReader(`{"match_id": 1, "duration": 94, "total_events": 1520, "player_count": 28, "teams": ["Home", "Away"]}`))
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, 1520, one[0].TotalEvents)
	assert.Equal(t, []string{"Home", "Away"}, one[0].Teams)

	many, err := ReadSummaries(strings.NewReader(`[{"match_id": 1}, {"match_id": 2}]`))
	require.NoError(t, err)
	assert.Len(t, many, 2)

	none, err := ReadSummaries(strings.NewReader("  "))
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = ReadSummaries(strings.NewReader("{not json"))
	assert.Error(t, err)
}

func writeDataDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestDirSource_PartialFailure(t *testing.T) {
	dir := writeDataDir(t, map[string]string{
		"player_stats.csv":   playersCSV,
		"events_clean.csv":   eventsCSV,
		"match_summary.json": `{"match_id": 1}`,
	})
	cfg := config.New()
	cfg.DataDir = dir

	s := store.New(nil)
	report := s.Load(DirSource(PathsFrom(cfg)))

	require.True(t, report.Partial())
	assert.Contains(t, report.Failures, "teams")
	assert.Equal(t, 2, report.Players)
	assert.Equal(t, 3, report.Events)
	assert.Equal(t, 1, report.Matches)
	assert.Zero(t, report.Teams)
	assert.NotEmpty(t, s.Current().Fingerprint)
}

func TestDirSource_UnsupportedFormat(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"players.xlsx": "binary"})
	cfg := config.New()
	cfg.DataDir = dir
	cfg.PlayersFile = "players.xlsx"

	_, err := DirSource(PathsFrom(cfg)).Players()
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	dir := writeDataDir(t, map[string]string{"events_clean.csv": eventsCSV})
	path := filepath.Join(dir, "events_clean.csv")

	before := Fingerprint(path)
	assert.Equal(t, before, Fingerprint(path))

	require.NoError(t, os.WriteFile(path, []byte(eventsCSV+"1,10,0,X,Home,Pass,Pass,,1,1,R1C1,true\n"), 0o600))
	assert.NotEqual(t, before, Fingerprint(path))

	require.NoError(t, os.Remove(path))
	assert.NotEqual(t, before, Fingerprint(path))
}

func TestPathsFrom_AbsoluteNamesKept(t *testing.T) {
	cfg := config.New()
	cfg.DataDir = "data"
	cfg.EventsFile = "/srv/events.csv"

	p := PathsFrom(cfg)
	assert.Equal(t, "/srv/events.csv", p.Events)
	assert.Equal(t, filepath.Join("data", "player_stats.csv"), p.Players)
	assert.Len(t, p.All(), 4)
}
