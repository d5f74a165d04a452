package match

import "github.com/DhavalSuthar-24/cricketclub/internal/models"

// ProjectStatus merges a match with its setup row. setup may be nil when the
// match has not been configured yet. With strictXI, a playing XI only counts
// as set when it holds exactly MaxPlayingXI players; otherwise any non-empty
// list does.
func ProjectStatus(m MatchRow, setup *InningsSetup, strictXI bool) MatchWithSetupStatus {
	st := SetupStatus{
		Team1PlayingXI: models.PlayerIDList{},
		Team2PlayingXI: models.PlayerIDList{},
	}
	if setup != nil {
		st.TossWinnerTeamID = setup.TossWinnerTeamID
		st.TossDecision = setup.TossDecision
		st.BattingTeamID = setup.BattingTeamID
		st.BowlingTeamID = setup.BowlingTeamID
		st.Status = setup.Status
		if setup.Team1PlayingXI != nil {
			st.Team1PlayingXI = setup.Team1PlayingXI
		}
		if setup.Team2PlayingXI != nil {
			st.Team2PlayingXI = setup.Team2PlayingXI
		}
	}

	st.IsTossDone = present(st.TossWinnerTeamID) && present(st.BattingTeamID) && present(st.BowlingTeamID)
	st.IsPlayingXISet = xiSet(st.Team1PlayingXI, strictXI) && xiSet(st.Team2PlayingXI, strictXI)
	st.IsSetupComplete = st.IsTossDone && st.IsPlayingXISet

	return MatchWithSetupStatus{MatchRow: m, SetupStatus: st}
}

// present treats a zero ID like a missing one.
func present(id *uint) bool {
	return id != nil && *id != 0
}

func xiSet(xi models.PlayerIDList, strict bool) bool {
	if strict {
		return len(xi) == MaxPlayingXI
	}
	return len(xi) > 0
}
