package api

type League struct {
	LeagueID         string         `json:"league_id"`
	Name             string         `json:"name"`
	Season           string         `json:"season"`
	Status           string         `json:"status"`
	PreviousLeagueID *string        `json:"previous_league_id"`
	TotalRosters     int            `json:"total_rosters"`
	Settings         LeagueSettings `json:"settings"`
}

// PreviousID returns the prior season's league id, or "" at the end of the
// chain. Sleeper uses both null and "0" as terminators.
func (l League) PreviousID() string {
	if l.PreviousLeagueID == nil {
		return ""
	}
	switch id := *l.PreviousLeagueID; id {
	case "", "0", "none":
		return ""
	default:
		return id
	}
}

type LeagueSettings struct {
	PlayoffStartWeek int `json:"playoff_start_week"`
	PlayoffWeekStart int `json:"playoff_week_start"`
	PlayoffWeekEnd   int `json:"playoff_week_end"`
	PlayoffTeams     int `json:"playoff_teams"`
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  *string        `json:"owner_id"`
	Metadata RosterMetadata `json:"metadata"`
	Settings RosterSettings `json:"settings"`
}

type RosterMetadata struct {
	TeamName string `json:"team_name"`
}

type RosterSettings struct {
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	Ties        int `json:"ties"`
	Rank        int `json:"rank"`
	Fpts        int `json:"fpts"`
	FptsDecimal int `json:"fpts_decimal"`
}

// PointsFor joins Sleeper's split integer and hundredths fields.
func (s RosterSettings) PointsFor() float64 {
	return float64(s.Fpts) + float64(s.FptsDecimal)/100
}

type User struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	DisplayName string       `json:"display_name"`
	Avatar      string       `json:"avatar"`
	Metadata    UserMetadata `json:"metadata"`
}

type UserMetadata struct {
	TeamName string `json:"team_name"`
}

func (u User) AvatarURL() string {
	if u.Avatar == "" {
		return ""
	}
	return "https://sleepercdn.com/avatars/thumbs/" + u.Avatar
}

type Matchup struct {
	MatchupID *int    `json:"matchup_id"`
	RosterID  int     `json:"roster_id"`
	Points    float64 `json:"points"`
}
