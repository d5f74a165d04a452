package match

import "fmt"

// BuildLiveSummary turns one joined row into a live feed card.
func BuildLiveSummary(row LiveMatchRow) LiveMatchSummary {
	return LiveMatchSummary{
		ID:      row.MatchID,
		MatchID: row.MatchID,
		Team1:   TeamName{Name: row.Team1Name},
		Team2:   TeamName{Name: row.Team2Name},
		Score:   scoreLine(row),
		Status:  statusLabel(row),
	}
}

// scoreLine is "<batting team> <runs>/<wickets> (<overs>)". It is empty unless
// the row carries both a score and an overs value.
func scoreLine(row LiveMatchRow) string {
	if row.Score == nil || *row.Score == "" || row.Overs == nil || *row.Overs == "" {
		return ""
	}
	return fmt.Sprintf("%s %s (%s)", battingTeamName(row), *row.Score, *row.Overs)
}

func battingTeamName(row LiveMatchRow) string {
	if row.BattingTeamID == nil {
		return ""
	}
	switch *row.BattingTeamID {
	case row.Team1ID:
		return row.Team1Name
	case row.Team2ID:
		return row.Team2Name
	}
	return ""
}

func statusLabel(row LiveMatchRow) string {
	switch {
	case row.IsLive:
		return "Live - " + deref(row.ResultText)
	case row.IsCompleted:
		return "Match Finished"
	default:
		return deref(row.Status)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
