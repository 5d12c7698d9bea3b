// Package pokeapi fetches catalog resources over HTTP and decodes them
// into typed payloads. One schema type exists per resource kind; the
// seeding pipeline never consumes dynamic maps.
package pokeapi

import (
	"github.com/pokebase/backend/internal/domain"
)

// CollectionPage is one page of a paginated collection endpoint.
type CollectionPage struct {
	Count    int                  `json:"count"`
	Next     *string              `json:"next"`
	Previous *string              `json:"previous"`
	Results  []domain.ResourceRef `json:"results"`
}

// Localized sub-records shared by most resources.

type Name struct {
	Name     string             `json:"name"`
	Language domain.ResourceRef `json:"language"`
}

type Description struct {
	Description string             `json:"description"`
	Language    domain.ResourceRef `json:"language"`
}

type Effect struct {
	Effect   string             `json:"effect"`
	Language domain.ResourceRef `json:"language"`
}

type VerboseEffect struct {
	Effect      string             `json:"effect"`
	ShortEffect string             `json:"short_effect"`
	Language    domain.ResourceRef `json:"language"`
}

// FlavorText is a flavor-text entry dimensioned by game version.
type FlavorText struct {
	FlavorText string             `json:"flavor_text"`
	Language   domain.ResourceRef `json:"language"`
	Version    domain.ResourceRef `json:"version"`
}

// GroupFlavorText is a flavor-text entry dimensioned by version group
// (abilities, items, moves).
type GroupFlavorText struct {
	FlavorText   string             `json:"flavor_text"`
	Text         string             `json:"text"`
	Language     domain.ResourceRef `json:"language"`
	VersionGroup domain.ResourceRef `json:"version_group"`
}

// Body returns whichever of the two text fields the source populated.
func (f GroupFlavorText) Body() string {
	if f.FlavorText != "" {
		return f.FlavorText
	}
	return f.Text
}

// Resource payloads.

type Language struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Official bool   `json:"official"`
	ISO639   string `json:"iso639"`
	ISO3166  string `json:"iso3166"`
	Names    []Name `json:"names"`
}

type Region struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	MainGeneration domain.ResourceRef `json:"main_generation"`
	Names          []Name             `json:"names"`
}

type Generation struct {
	ID         int                `json:"id"`
	Name       string             `json:"name"`
	MainRegion domain.ResourceRef `json:"main_region"`
	Names      []Name             `json:"names"`
}

type VersionGroup struct {
	ID         int                  `json:"id"`
	Name       string               `json:"name"`
	Order      int                  `json:"order"`
	Generation domain.ResourceRef   `json:"generation"`
	Regions    []domain.ResourceRef `json:"regions"`
}

type Version struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	VersionGroup domain.ResourceRef `json:"version_group"`
	Names        []Name             `json:"names"`
}

type TypeRelations struct {
	NoDamageTo       []domain.ResourceRef `json:"no_damage_to"`
	HalfDamageTo     []domain.ResourceRef `json:"half_damage_to"`
	DoubleDamageTo   []domain.ResourceRef `json:"double_damage_to"`
	NoDamageFrom     []domain.ResourceRef `json:"no_damage_from"`
	HalfDamageFrom   []domain.ResourceRef `json:"half_damage_from"`
	DoubleDamageFrom []domain.ResourceRef `json:"double_damage_from"`
}

type Type struct {
	ID              int                `json:"id"`
	Name            string             `json:"name"`
	Generation      domain.ResourceRef `json:"generation"`
	MoveDamageClass domain.ResourceRef `json:"move_damage_class"`
	DamageRelations TypeRelations      `json:"damage_relations"`
	Names           []Name             `json:"names"`
}

type Stat struct {
	ID              int                `json:"id"`
	Name            string             `json:"name"`
	GameIndex       int                `json:"game_index"`
	IsBattleOnly    bool               `json:"is_battle_only"`
	MoveDamageClass domain.ResourceRef `json:"move_damage_class"`
	Names           []Name             `json:"names"`
}

type Nature struct {
	ID            int                `json:"id"`
	Name          string             `json:"name"`
	DecreasedStat domain.ResourceRef `json:"decreased_stat"`
	IncreasedStat domain.ResourceRef `json:"increased_stat"`
	HatesFlavor   domain.ResourceRef `json:"hates_flavor"`
	LikesFlavor   domain.ResourceRef `json:"likes_flavor"`
	Names         []Name             `json:"names"`
}

type Characteristic struct {
	ID           int                `json:"id"`
	GeneModulo   int                `json:"gene_modulo"`
	HighestStat  domain.ResourceRef `json:"highest_stat"`
	Descriptions []Description      `json:"descriptions"`
}

type Ability struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	IsMainSeries      bool               `json:"is_main_series"`
	Generation        domain.ResourceRef `json:"generation"`
	Names             []Name             `json:"names"`
	EffectEntries     []VerboseEffect    `json:"effect_entries"`
	FlavorTextEntries []GroupFlavorText  `json:"flavor_text_entries"`
}

type EggGroup struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

type GrowthRate struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Formula      string        `json:"formula"`
	Descriptions []Description `json:"descriptions"`
}

type PokemonColor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

type PokemonShape struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

type PokemonHabitat struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

type ItemAttribute struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Names        []Name        `json:"names"`
	Descriptions []Description `json:"descriptions"`
}

type ItemCategory struct {
	ID     int                `json:"id"`
	Name   string             `json:"name"`
	Pocket domain.ResourceRef `json:"pocket"`
	Names  []Name             `json:"names"`
}

type ItemFlingEffect struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	EffectEntries []Effect `json:"effect_entries"`
}

type Item struct {
	ID                int                  `json:"id"`
	Name              string               `json:"name"`
	Cost              int                  `json:"cost"`
	FlingPower        *int                 `json:"fling_power"`
	FlingEffect       domain.ResourceRef   `json:"fling_effect"`
	Attributes        []domain.ResourceRef `json:"attributes"`
	Category          domain.ResourceRef   `json:"category"`
	EffectEntries     []VerboseEffect      `json:"effect_entries"`
	FlavorTextEntries []GroupFlavorText    `json:"flavor_text_entries"`
	Names             []Name               `json:"names"`
}

type Machine struct {
	ID           int                `json:"id"`
	Item         domain.ResourceRef `json:"item"`
	Move         domain.ResourceRef `json:"move"`
	VersionGroup domain.ResourceRef `json:"version_group"`
}

type BerryFirmness struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

type BerryFlavor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

type BerryFlavorPotency struct {
	Potency int                `json:"potency"`
	Flavor  domain.ResourceRef `json:"flavor"`
}

type Berry struct {
	ID               int                  `json:"id"`
	Name             string               `json:"name"`
	GrowthTime       int                  `json:"growth_time"`
	MaxHarvest       int                  `json:"max_harvest"`
	NaturalGiftPower int                  `json:"natural_gift_power"`
	Size             int                  `json:"size"`
	Smoothness       int                  `json:"smoothness"`
	SoilDryness      int                  `json:"soil_dryness"`
	Firmness         domain.ResourceRef   `json:"firmness"`
	Flavors          []BerryFlavorPotency `json:"flavors"`
	Item             domain.ResourceRef   `json:"item"`
	NaturalGiftType  domain.ResourceRef   `json:"natural_gift_type"`
}

type MoveDamageClass struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Descriptions []Description `json:"descriptions"`
	Names        []Name        `json:"names"`
}

type MoveTarget struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Descriptions []Description `json:"descriptions"`
	Names        []Name        `json:"names"`
}

type MoveAilment struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

type MoveCategory struct {
	ID           int           `json:"id"`
	Name         string        `json:"name"`
	Descriptions []Description `json:"descriptions"`
}

type MoveMeta struct {
	Ailment       domain.ResourceRef `json:"ailment"`
	Category      domain.ResourceRef `json:"category"`
	MinHits       *int               `json:"min_hits"`
	MaxHits       *int               `json:"max_hits"`
	MinTurns      *int               `json:"min_turns"`
	MaxTurns      *int               `json:"max_turns"`
	Drain         int                `json:"drain"`
	Healing       int                `json:"healing"`
	CritRate      int                `json:"crit_rate"`
	AilmentChance int                `json:"ailment_chance"`
	FlinchChance  int                `json:"flinch_chance"`
	StatChance    int                `json:"stat_chance"`
}

type Move struct {
	ID                int                `json:"id"`
	Name              string             `json:"name"`
	Accuracy          *int               `json:"accuracy"`
	EffectChance      *int               `json:"effect_chance"`
	PP                *int               `json:"pp"`
	Priority          int                `json:"priority"`
	Power             *int               `json:"power"`
	DamageClass       domain.ResourceRef `json:"damage_class"`
	Generation        domain.ResourceRef `json:"generation"`
	Target            domain.ResourceRef `json:"target"`
	Type              domain.ResourceRef `json:"type"`
	Meta              *MoveMeta          `json:"meta"`
	EffectEntries     []VerboseEffect    `json:"effect_entries"`
	FlavorTextEntries []GroupFlavorText  `json:"flavor_text_entries"`
	Names             []Name             `json:"names"`
}

type EncounterMethod struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
	Names []Name `json:"names"`
}

type EncounterCondition struct {
	ID     int                  `json:"id"`
	Name   string               `json:"name"`
	Names  []Name               `json:"names"`
	Values []domain.ResourceRef `json:"values"`
}

type EncounterConditionValue struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Condition domain.ResourceRef `json:"condition"`
	Names     []Name             `json:"names"`
}

type Location struct {
	ID     int                `json:"id"`
	Name   string             `json:"name"`
	Region domain.ResourceRef `json:"region"`
	Names  []Name             `json:"names"`
}

type LocationArea struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	GameIndex int                `json:"game_index"`
	Location  domain.ResourceRef `json:"location"`
	Names     []Name             `json:"names"`
}

type Pokedex struct {
	ID            int                  `json:"id"`
	Name          string               `json:"name"`
	IsMainSeries  bool                 `json:"is_main_series"`
	Region        domain.ResourceRef   `json:"region"`
	VersionGroups []domain.ResourceRef `json:"version_groups"`
	Descriptions  []Description        `json:"descriptions"`
	Names         []Name               `json:"names"`
}

type EvolutionTrigger struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []Name `json:"names"`
}

// EvolutionDetail is one condition tuple under which a chain link evolves.
type EvolutionDetail struct {
	Item                  domain.ResourceRef `json:"item"`
	Trigger               domain.ResourceRef `json:"trigger"`
	Gender                *int               `json:"gender"`
	HeldItem              domain.ResourceRef `json:"held_item"`
	KnownMove             domain.ResourceRef `json:"known_move"`
	KnownMoveType         domain.ResourceRef `json:"known_move_type"`
	Location              domain.ResourceRef `json:"location"`
	MinLevel              *int               `json:"min_level"`
	MinHappiness          *int               `json:"min_happiness"`
	MinBeauty             *int               `json:"min_beauty"`
	MinAffection          *int               `json:"min_affection"`
	NeedsOverworldRain    bool               `json:"needs_overworld_rain"`
	PartySpecies          domain.ResourceRef `json:"party_species"`
	PartyType             domain.ResourceRef `json:"party_type"`
	RelativePhysicalStats *int               `json:"relative_physical_stats"`
	TimeOfDay             string             `json:"time_of_day"`
	TradeSpecies          domain.ResourceRef `json:"trade_species"`
	TurnUpsideDown        bool               `json:"turn_upside_down"`
}

// ChainLink is the recursive tree node of an evolution-chain resource.
type ChainLink struct {
	IsBaby           bool               `json:"is_baby"`
	Species          domain.ResourceRef `json:"species"`
	EvolutionDetails []EvolutionDetail  `json:"evolution_details"`
	EvolvesTo        []ChainLink        `json:"evolves_to"`
}

type EvolutionChain struct {
	ID              int                `json:"id"`
	BabyTriggerItem domain.ResourceRef `json:"baby_trigger_item"`
	Chain           ChainLink          `json:"chain"`
}

type DexEntry struct {
	EntryNumber int                `json:"entry_number"`
	Pokedex     domain.ResourceRef `json:"pokedex"`
}

type SpeciesName struct {
	Name     string             `json:"name"`
	Genus    string             `json:"genus"`
	Language domain.ResourceRef `json:"language"`
}

type Species struct {
	ID                   int                  `json:"id"`
	Name                 string               `json:"name"`
	Order                int                  `json:"order"`
	GenderRate           int                  `json:"gender_rate"`
	CaptureRate          int                  `json:"capture_rate"`
	BaseHappiness        *int                 `json:"base_happiness"`
	IsBaby               bool                 `json:"is_baby"`
	IsLegendary          bool                 `json:"is_legendary"`
	IsMythical           bool                 `json:"is_mythical"`
	HatchCounter         *int                 `json:"hatch_counter"`
	HasGenderDifferences bool                 `json:"has_gender_differences"`
	FormsSwitchable      bool                 `json:"forms_switchable"`
	GrowthRate           domain.ResourceRef   `json:"growth_rate"`
	PokedexNumbers       []DexEntry           `json:"pokedex_numbers"`
	EggGroups            []domain.ResourceRef `json:"egg_groups"`
	Color                domain.ResourceRef   `json:"color"`
	Shape                domain.ResourceRef   `json:"shape"`
	EvolvesFromSpecies   domain.ResourceRef   `json:"evolves_from_species"`
	EvolutionChain       domain.ResourceRef   `json:"evolution_chain"`
	Habitat              domain.ResourceRef   `json:"habitat"`
	Generation           domain.ResourceRef   `json:"generation"`
	Names                []SpeciesName        `json:"names"`
	FlavorTextEntries    []FlavorText         `json:"flavor_text_entries"`
}

type PokemonAbility struct {
	IsHidden bool               `json:"is_hidden"`
	Slot     int                `json:"slot"`
	Ability  domain.ResourceRef `json:"ability"`
}

type PokemonType struct {
	Slot int                `json:"slot"`
	Type domain.ResourceRef `json:"type"`
}

type PokemonStat struct {
	BaseStat int                `json:"base_stat"`
	Effort   int                `json:"effort"`
	Stat     domain.ResourceRef `json:"stat"`
}

type PokemonMove struct {
	Move domain.ResourceRef `json:"move"`
}

type Pokemon struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	BaseExperience *int               `json:"base_experience"`
	Height         int                `json:"height"`
	Weight         int                `json:"weight"`
	Order          int                `json:"order"`
	IsDefault      bool               `json:"is_default"`
	Species        domain.ResourceRef `json:"species"`
	Abilities      []PokemonAbility   `json:"abilities"`
	Types          []PokemonType      `json:"types"`
	Stats          []PokemonStat      `json:"stats"`
	Moves          []PokemonMove      `json:"moves"`
}

type PokemonForm struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	FormName     string             `json:"form_name"`
	Order        int                `json:"order"`
	FormOrder    int                `json:"form_order"`
	IsDefault    bool               `json:"is_default"`
	IsBattleOnly bool               `json:"is_battle_only"`
	IsMega       bool               `json:"is_mega"`
	Pokemon      domain.ResourceRef `json:"pokemon"`
	VersionGroup domain.ResourceRef `json:"version_group"`
	FormNames    []Name             `json:"form_names"`
	Names        []Name             `json:"names"`
}

type SpeciesGenderDetail struct {
	Rate           int                `json:"rate"`
	PokemonSpecies domain.ResourceRef `json:"pokemon_species"`
}

type Gender struct {
	ID                    int                   `json:"id"`
	Name                  string                `json:"name"`
	PokemonSpeciesDetails []SpeciesGenderDetail `json:"pokemon_species_details"`
}
