package model

// Synthesis is the backend-derived aggregate over a case's evidence. The client
// never constructs or mutates it.
type Synthesis struct {
	Summary        string          `json:"summary"`
	Parties        []Party         `json:"parties"`
	Strengths      []Finding       `json:"strengths"`
	Weaknesses     []Finding       `json:"weaknesses"`
	KeyDates       []KeyDate       `json:"key_dates"`
	UnclearPoints  []string        `json:"unclear_points"`
	Contradictions []Contradiction `json:"contradictions,omitempty"`
}

// Party is one identified party to the matter.
type Party struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Quality string `json:"quality"`
	Source  string `json:"source"`
}

// Finding is a strength or weakness with its source citation.
type Finding struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// KeyDate is a dated event with its source citation.
type KeyDate struct {
	Date   string `json:"date"`
	Event  string `json:"event"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

// Contradiction is a conflict the backend found between evidence items.
type Contradiction struct {
	Description string   `json:"description"`
	Sources     []string `json:"sources"`
}
