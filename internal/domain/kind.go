package domain

// Kind identifies an entity kind of the catalog schema. Every kind maps
// onto exactly one relational table through the registries below, resolved
// at compile time — the pipeline never discovers tables by reflection.
type Kind string

// Record kinds — rows identified by a single numeric primary key.
const (
	KindLanguage                Kind = "language"
	KindRegion                  Kind = "region"
	KindGeneration              Kind = "generation"
	KindVersionGroup            Kind = "version_group"
	KindVersion                 Kind = "version"
	KindType                    Kind = "type"
	KindStat                    Kind = "stat"
	KindNature                  Kind = "nature"
	KindCharacteristic          Kind = "characteristic"
	KindAbility                 Kind = "ability"
	KindEggGroup                Kind = "egg_group"
	KindGrowthRate              Kind = "growth_rate"
	KindPokemonColor            Kind = "pokemon_color"
	KindPokemonShape            Kind = "pokemon_shape"
	KindPokemonHabitat          Kind = "pokemon_habitat"
	KindItemAttribute           Kind = "item_attribute"
	KindItemCategory            Kind = "item_category"
	KindItemFlingEffect         Kind = "item_fling_effect"
	KindItem                    Kind = "item"
	KindMachine                 Kind = "machine"
	KindBerryFirmness           Kind = "berry_firmness"
	KindBerryFlavor             Kind = "berry_flavor"
	KindBerry                   Kind = "berry"
	KindMoveDamageClass         Kind = "move_damage_class"
	KindMoveTarget              Kind = "move_target"
	KindMoveAilment             Kind = "move_ailment"
	KindMoveCategory            Kind = "move_category"
	KindMove                    Kind = "move"
	KindEncounterMethod         Kind = "encounter_method"
	KindEncounterCondition      Kind = "encounter_condition"
	KindEncounterConditionValue Kind = "encounter_condition_value"
	KindLocation                Kind = "location"
	KindLocationArea            Kind = "location_area"
	KindPokedex                 Kind = "pokedex"
	KindEvolutionTrigger        Kind = "evolution_trigger"
	KindEvolutionChain          Kind = "evolution_chain"
	KindSpecies                 Kind = "pokemon_species"
	KindPokemon                 Kind = "pokemon"
	KindPokemonForm             Kind = "pokemon_form"
	KindGender                  Kind = "gender"
)

// Join kinds — rows identified by a composite key over two foreign keys
// (relationship and localization tables).
const (
	KindLanguageName                Kind = "language_name"
	KindRegionName                  Kind = "region_name"
	KindGenerationName              Kind = "generation_name"
	KindVersionName                 Kind = "version_name"
	KindVersionGroupRegion          Kind = "version_group_region"
	KindTypeName                    Kind = "type_name"
	KindTypeEfficacy                Kind = "type_efficacy"
	KindStatName                    Kind = "stat_name"
	KindNatureName                  Kind = "nature_name"
	KindCharacteristicText          Kind = "characteristic_text"
	KindAbilityName                 Kind = "ability_name"
	KindAbilityEffectText           Kind = "ability_effect_text"
	KindAbilityFlavorText           Kind = "ability_flavor_text"
	KindEggGroupName                Kind = "egg_group_name"
	KindGrowthRateText              Kind = "growth_rate_text"
	KindPokemonColorName            Kind = "pokemon_color_name"
	KindPokemonShapeName            Kind = "pokemon_shape_name"
	KindPokemonHabitatName          Kind = "pokemon_habitat_name"
	KindItemName                    Kind = "item_name"
	KindItemEffectText              Kind = "item_effect_text"
	KindItemFlavorText              Kind = "item_flavor_text"
	KindItemAttributeName           Kind = "item_attribute_name"
	KindItemCategoryName            Kind = "item_category_name"
	KindItemFlingEffectText         Kind = "item_fling_effect_text"
	KindItemAttributeMap            Kind = "item_attribute_map"
	KindBerryFirmnessName           Kind = "berry_firmness_name"
	KindBerryFlavorName             Kind = "berry_flavor_name"
	KindBerryFlavorMap              Kind = "berry_flavor_map"
	KindMoveName                    Kind = "move_name"
	KindMoveEffectText              Kind = "move_effect_text"
	KindMoveFlavorText              Kind = "move_flavor_text"
	KindMoveDamageClassText         Kind = "move_damage_class_text"
	KindMoveTargetText              Kind = "move_target_text"
	KindMoveAilmentName             Kind = "move_ailment_name"
	KindEncounterMethodName         Kind = "encounter_method_name"
	KindEncounterConditionName      Kind = "encounter_condition_name"
	KindEncounterConditionValueName Kind = "encounter_condition_value_name"
	KindLocationName                Kind = "location_name"
	KindLocationAreaName            Kind = "location_area_name"
	KindPokedexName                 Kind = "pokedex_name"
	KindPokedexVersionGroup         Kind = "pokedex_version_group"
	KindEvolutionTriggerName        Kind = "evolution_trigger_name"
	KindSpeciesName                 Kind = "pokemon_species_name"
	KindSpeciesFlavorText           Kind = "pokemon_species_flavor_text"
	KindSpeciesEggGroup             Kind = "pokemon_egg_group"
	KindSpeciesDexNumber            Kind = "pokemon_dex_number"
	KindPokemonType                 Kind = "pokemon_type"
	KindPokemonStat                 Kind = "pokemon_stat"
	KindPokemonAbility              Kind = "pokemon_ability"
	KindPokemonMove                 Kind = "pokemon_move"
	KindPokemonFormName             Kind = "pokemon_form_name"
	KindGenderSpecies               Kind = "gender_species"
)

// JoinSpec describes the composite-key table behind a join kind.
type JoinSpec struct {
	Table        string
	PrimaryCol   string
	SecondaryCol string
	// Secondary is the record kind the secondary column references; join
	// writes verify a row of this kind exists before inserting.
	Secondary Kind
}

var recordTables = map[Kind]string{
	KindLanguage:                "languages",
	KindRegion:                  "regions",
	KindGeneration:              "generations",
	KindVersionGroup:            "version_groups",
	KindVersion:                 "versions",
	KindType:                    "types",
	KindStat:                    "stats",
	KindNature:                  "natures",
	KindCharacteristic:          "characteristics",
	KindAbility:                 "abilities",
	KindEggGroup:                "egg_groups",
	KindGrowthRate:              "growth_rates",
	KindPokemonColor:            "pokemon_colors",
	KindPokemonShape:            "pokemon_shapes",
	KindPokemonHabitat:          "pokemon_habitats",
	KindItemAttribute:           "item_attributes",
	KindItemCategory:            "item_categories",
	KindItemFlingEffect:         "item_fling_effects",
	KindItem:                    "items",
	KindMachine:                 "machines",
	KindBerryFirmness:           "berry_firmness",
	KindBerryFlavor:             "berry_flavors",
	KindBerry:                   "berries",
	KindMoveDamageClass:         "move_damage_classes",
	KindMoveTarget:              "move_targets",
	KindMoveAilment:             "move_ailments",
	KindMoveCategory:            "move_categories",
	KindMove:                    "moves",
	KindEncounterMethod:         "encounter_methods",
	KindEncounterCondition:      "encounter_conditions",
	KindEncounterConditionValue: "encounter_condition_values",
	KindLocation:                "locations",
	KindLocationArea:            "location_areas",
	KindPokedex:                 "pokedexes",
	KindEvolutionTrigger:        "evolution_triggers",
	KindEvolutionChain:          "evolution_chains",
	KindSpecies:                 "pokemon_species",
	KindPokemon:                 "pokemon",
	KindPokemonForm:             "pokemon_forms",
	KindGender:                  "genders",
}

var joinTables = map[Kind]JoinSpec{
	KindLanguageName:                {"language_names", "language_id", "local_language_id", KindLanguage},
	KindRegionName:                  {"region_names", "region_id", "language_id", KindLanguage},
	KindGenerationName:              {"generation_names", "generation_id", "language_id", KindLanguage},
	KindVersionName:                 {"version_names", "version_id", "language_id", KindLanguage},
	KindVersionGroupRegion:          {"version_group_regions", "version_group_id", "region_id", KindRegion},
	KindTypeName:                    {"type_names", "type_id", "language_id", KindLanguage},
	KindTypeEfficacy:                {"type_efficacy", "damage_type_id", "target_type_id", KindType},
	KindStatName:                    {"stat_names", "stat_id", "language_id", KindLanguage},
	KindNatureName:                  {"nature_names", "nature_id", "language_id", KindLanguage},
	KindCharacteristicText:          {"characteristic_texts", "characteristic_id", "language_id", KindLanguage},
	KindAbilityName:                 {"ability_names", "ability_id", "language_id", KindLanguage},
	KindAbilityEffectText:           {"ability_effect_texts", "ability_id", "language_id", KindLanguage},
	KindAbilityFlavorText:           {"ability_flavor_texts", "ability_id", "language_id", KindLanguage},
	KindEggGroupName:                {"egg_group_names", "egg_group_id", "language_id", KindLanguage},
	KindGrowthRateText:              {"growth_rate_texts", "growth_rate_id", "language_id", KindLanguage},
	KindPokemonColorName:            {"pokemon_color_names", "pokemon_color_id", "language_id", KindLanguage},
	KindPokemonShapeName:            {"pokemon_shape_names", "pokemon_shape_id", "language_id", KindLanguage},
	KindPokemonHabitatName:          {"pokemon_habitat_names", "pokemon_habitat_id", "language_id", KindLanguage},
	KindItemName:                    {"item_names", "item_id", "language_id", KindLanguage},
	KindItemEffectText:              {"item_effect_texts", "item_id", "language_id", KindLanguage},
	KindItemFlavorText:              {"item_flavor_texts", "item_id", "language_id", KindLanguage},
	KindItemAttributeName:           {"item_attribute_names", "item_attribute_id", "language_id", KindLanguage},
	KindItemCategoryName:            {"item_category_names", "item_category_id", "language_id", KindLanguage},
	KindItemFlingEffectText:         {"item_fling_effect_texts", "item_fling_effect_id", "language_id", KindLanguage},
	KindItemAttributeMap:            {"item_attribute_map", "item_id", "item_attribute_id", KindItemAttribute},
	KindBerryFirmnessName:           {"berry_firmness_names", "berry_firmness_id", "language_id", KindLanguage},
	KindBerryFlavorName:             {"berry_flavor_names", "berry_flavor_id", "language_id", KindLanguage},
	KindBerryFlavorMap:              {"berry_flavor_map", "berry_id", "berry_flavor_id", KindBerryFlavor},
	KindMoveName:                    {"move_names", "move_id", "language_id", KindLanguage},
	KindMoveEffectText:              {"move_effect_texts", "move_id", "language_id", KindLanguage},
	KindMoveFlavorText:              {"move_flavor_texts", "move_id", "language_id", KindLanguage},
	KindMoveDamageClassText:         {"move_damage_class_texts", "move_damage_class_id", "language_id", KindLanguage},
	KindMoveTargetText:              {"move_target_texts", "move_target_id", "language_id", KindLanguage},
	KindMoveAilmentName:             {"move_ailment_names", "move_ailment_id", "language_id", KindLanguage},
	KindEncounterMethodName:         {"encounter_method_names", "encounter_method_id", "language_id", KindLanguage},
	KindEncounterConditionName:      {"encounter_condition_names", "encounter_condition_id", "language_id", KindLanguage},
	KindEncounterConditionValueName: {"encounter_condition_value_names", "encounter_condition_value_id", "language_id", KindLanguage},
	KindLocationName:                {"location_names", "location_id", "language_id", KindLanguage},
	KindLocationAreaName:            {"location_area_names", "location_area_id", "language_id", KindLanguage},
	KindPokedexName:                 {"pokedex_names", "pokedex_id", "language_id", KindLanguage},
	KindPokedexVersionGroup:         {"pokedex_version_groups", "pokedex_id", "version_group_id", KindVersionGroup},
	KindEvolutionTriggerName:        {"evolution_trigger_names", "evolution_trigger_id", "language_id", KindLanguage},
	KindSpeciesName:                 {"pokemon_species_names", "pokemon_species_id", "language_id", KindLanguage},
	KindSpeciesFlavorText:           {"pokemon_species_flavor_texts", "pokemon_species_id", "language_id", KindLanguage},
	KindSpeciesEggGroup:             {"pokemon_egg_groups", "pokemon_species_id", "egg_group_id", KindEggGroup},
	KindSpeciesDexNumber:            {"pokemon_dex_numbers", "pokemon_species_id", "pokedex_id", KindPokedex},
	KindPokemonType:                 {"pokemon_types", "pokemon_id", "type_id", KindType},
	KindPokemonStat:                 {"pokemon_stats", "pokemon_id", "stat_id", KindStat},
	KindPokemonAbility:              {"pokemon_abilities", "pokemon_id", "ability_id", KindAbility},
	KindPokemonMove:                 {"pokemon_moves", "pokemon_id", "move_id", KindMove},
	KindPokemonFormName:             {"pokemon_form_names", "pokemon_form_id", "language_id", KindLanguage},
	KindGenderSpecies:               {"gender_species", "gender_id", "pokemon_species_id", KindSpecies},
}

// RecordTable returns the table behind a record kind.
func (k Kind) RecordTable() (string, bool) {
	t, ok := recordTables[k]
	return t, ok
}

// JoinSpec returns the composite-key spec behind a join kind.
func (k Kind) JoinSpec() (JoinSpec, bool) {
	s, ok := joinTables[k]
	return s, ok
}
