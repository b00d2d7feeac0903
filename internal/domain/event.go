package domain

type EventType string

const (
	EventCharacterCreated EventType = "character.created"
	EventCharacterUpdated EventType = "character.updated"
	EventCharacterDeleted EventType = "character.deleted"
	EventCharactersSeeded EventType = "characters.seeded"
)

// CharacterEvent is published after a mutation has been persisted.
type CharacterEvent struct {
	Type      EventType  `json:"type"`
	ID        string     `json:"id,omitempty"`
	Character *Character `json:"character,omitempty"`
}
