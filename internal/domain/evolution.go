package domain

// EvolutionRequirement is one way a species evolves into EvolvedSpeciesID.
// Composite uniqueness is the full tuple of conditions, not just the
// trigger; find-or-create semantics key on every field at once.
type EvolutionRequirement struct {
	EvolvedSpeciesID      int
	TriggerID             int
	ItemID                *int
	HeldItemID            *int
	LocationID            *int
	KnownMoveID           *int
	PartySpeciesID        *int
	TradeSpeciesID        *int
	MinLevel              *int
	MinHappiness          *int
	MinBeauty             *int
	MinAffection          *int
	GenderID              *int
	TimeOfDay             string
	RelativePhysicalStats *int
	NeedsOverworldRain    bool
	TurnUpsideDown        bool
}

// JoinRow carries one fan-out element for a composite-key write: the
// secondary foreign key plus the payload columns copied from the source
// element. Fields may be empty for pure join tables.
type JoinRow struct {
	SecondaryID int
	Fields      map[string]any
}
