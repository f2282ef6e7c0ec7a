package teams

// Team pairs a franchise's full name with the abbreviation used as the
// column key in penalty tables. Abbreviations match source data exactly.
type Team struct {
	FullName     string `json:"fullName"`
	Abbreviation string `json:"abbreviation"`
}

// Option is a dropdown entry for the team selector.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Selection is a resolved team selector.
type Selection struct {
	Abbreviation string
	League       bool
}
