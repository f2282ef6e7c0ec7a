package teams

import "sort"

// League selects league-wide totals instead of a single team.
const League = "NHL"

// Relocated franchises are listed under their current abbreviation; VEG is
// used instead of VGK to match the source tables.
var catalog = []Team{
	{FullName: "Anaheim Ducks", Abbreviation: "ANA"},
	{FullName: "Arizona/Phoenix Coyotes", Abbreviation: "ARI"},
	{FullName: "Boston Bruins", Abbreviation: "BOS"},
	{FullName: "Buffalo Sabres", Abbreviation: "BUF"},
	{FullName: "Calgary Flames", Abbreviation: "CGY"},
	{FullName: "Carolina Hurricanes", Abbreviation: "CAR"},
	{FullName: "Chicago Blackhawks", Abbreviation: "CHI"},
	{FullName: "Colorado Avalanche", Abbreviation: "COL"},
	{FullName: "Columbus Blue Jackets", Abbreviation: "CBJ"},
	{FullName: "Dallas Stars", Abbreviation: "DAL"},
	{FullName: "Detroit Red Wings", Abbreviation: "DET"},
	{FullName: "Edmonton Oilers", Abbreviation: "EDM"},
	{FullName: "Florida Panthers", Abbreviation: "FLA"},
	{FullName: "Los Angeles Kings", Abbreviation: "LAK"},
	{FullName: "Minnesota Wild", Abbreviation: "MIN"},
	{FullName: "Montreal Canadiens", Abbreviation: "MTL"},
	{FullName: "Nashville Predators", Abbreviation: "NSH"},
	{FullName: "New Jersey Devils", Abbreviation: "NJD"},
	{FullName: "New York Islanders", Abbreviation: "NYI"},
	{FullName: "New York Rangers", Abbreviation: "NYR"},
	{FullName: "Ottawa Senators", Abbreviation: "OTT"},
	{FullName: "Philadelphia Flyers", Abbreviation: "PHI"},
	{FullName: "Pittsburgh Penguins", Abbreviation: "PIT"},
	{FullName: "San Jose Sharks", Abbreviation: "SJS"},
	{FullName: "St. Louis Blues", Abbreviation: "STL"},
	{FullName: "Tampa Bay Lightning", Abbreviation: "TBL"},
	{FullName: "Toronto Maple Leafs", Abbreviation: "TOR"},
	{FullName: "Vancouver Canucks", Abbreviation: "VAN"},
	{FullName: "Vegas Golden Knights", Abbreviation: "VEG"},
	{FullName: "Washington Capitals", Abbreviation: "WSH"},
	{FullName: "Winnipeg Jets/Atlanta Thrashers", Abbreviation: "WPG"},
}

var (
	byFullName     = indexBy(func(t Team) string { return t.FullName })
	byAbbreviation = indexBy(func(t Team) string { return t.Abbreviation })
	abbreviations  = sortedAbbreviations()
	byName         = sortedByFullName()
)

func indexBy(key func(Team) string) map[string]Team {
	out := make(map[string]Team, len(catalog))
	for _, t := range catalog {
		out[key(t)] = t
	}
	return out
}

func sortedAbbreviations() []string {
	out := make([]string, 0, len(catalog))
	for _, t := range catalog {
		out = append(out, t.Abbreviation)
	}
	sort.Strings(out)
	return out
}

func sortedByFullName() []Team {
	out := make([]Team, len(catalog))
	copy(out, catalog)
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out
}

// Abbreviation maps a full team name to its abbreviation. The League
// sentinel maps to itself.
func Abbreviation(fullName string) (string, bool) {
	if fullName == League {
		return League, true
	}
	t, ok := byFullName[fullName]
	return t.Abbreviation, ok
}

// ByAbbreviation looks up a team by its exact, case-sensitive abbreviation.
func ByAbbreviation(abbr string) (Team, bool) {
	t, ok := byAbbreviation[abbr]
	return t, ok
}

// Resolve accepts the League sentinel, an abbreviation or a full name.
func Resolve(selector string) (Selection, bool) {
	if selector == League {
		return Selection{Abbreviation: League, League: true}, true
	}
	if t, ok := byAbbreviation[selector]; ok {
		return Selection{Abbreviation: t.Abbreviation}, true
	}
	if t, ok := byFullName[selector]; ok {
		return Selection{Abbreviation: t.Abbreviation}, true
	}
	return Selection{}, false
}

// Abbreviations returns every abbreviation in lexicographic order. This is
// the category order of per-team charts.
func Abbreviations() []string {
	out := make([]string, len(abbreviations))
	copy(out, abbreviations)
	return out
}

// All returns the catalog sorted by full name.
func All() []Team {
	out := make([]Team, len(byName))
	copy(out, byName)
	return out
}

// Options lists the dropdown entries: the league first, then teams by full name.
func Options() []Option {
	out := make([]Option, 0, len(byName)+1)
	out = append(out, Option{Value: League, Label: League})
	for _, t := range byName {
		out = append(out, Option{Value: t.Abbreviation, Label: t.FullName})
	}
	return out
}
