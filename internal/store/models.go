package store

type Category struct {
	ID   string `json:"category_id"`
	Name string `json:"category_name"`
}

type PresetQuestion struct {
	Question    string `json:"preset_question"`
	KnowledgeID int64  `json:"knowledge_id"`
}

// KnowledgeDetail is one joined row of a knowledge entry and a supporting
// fact. The same success title and question repeat across the rows of one
// entry.
type KnowledgeDetail struct {
	SuccessTitle   string
	PresetQuestion string
	FactType       string
	FactText       string
	ExperienceFlag string // "POSITIVE" or "NEGATIVE"
}
