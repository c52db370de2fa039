// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package intent

// keyword is a literal substring and the score it adds to its value.
// Weights are in (0,1].
type keyword struct {
	term   string
	weight float64
}

type valueRule struct {
	value    string
	keywords []keyword
}

type dimensionTable struct {
	dim   Dimension
	rules []valueRule
}

// Table order is significant: a tie within a dimension goes to the rule
// listed first.
var dimensionTables = []dimensionTable{
	{
		dim: DimensionStyle,
		rules: []valueRule{
			{string(StyleRealistic), []keyword{
				{"realistic", 1.0}, {"photoreal", 1.0}, {"lifelike", 0.9}, {"human", 0.5}, {"natural", 0.5},
			}},
			{string(StyleCartoon), []keyword{
				{"cartoon", 1.0}, {"toon", 0.9}, {"chibi", 0.9}, {"anime", 0.8}, {"cute", 0.6},
			}},
			{string(StyleStylized), []keyword{
				{"stylized", 1.0}, {"stylised", 1.0}, {"low poly", 0.9}, {"lowpoly", 0.9}, {"minimal", 0.5},
			}},
			{string(StyleRobotic), []keyword{
				{"robot", 1.0}, {"android", 0.9}, {"cyborg", 0.9}, {"mech", 0.8}, {"mechanical", 0.7},
			}},
			{string(StyleFantasy), []keyword{
				{"fantasy", 1.0}, {"wizard", 0.8}, {"knight", 0.8}, {"medieval", 0.7}, {"zombie", 0.7},
			}},
		},
	},
	{
		dim: DimensionPurpose,
		rules: []valueRule{
			{string(PurposeAnimation), []keyword{
				{"animation", 1.0}, {"animate", 0.9}, {"cinematic", 0.8}, {"film", 0.6}, {"movie", 0.6},
			}},
			{string(PurposeGame), []keyword{
				{"game", 1.0}, {"gaming", 0.9}, {"npc", 0.9}, {"rpg", 0.8}, {"player", 0.7},
			}},
			{string(PurposePresentation), []keyword{
				{"presentation", 1.0}, {"presenter", 0.9}, {"showcase", 0.8}, {"slides", 0.7}, {"pitch", 0.6},
			}},
			{string(PurposeSocial), []keyword{
				{"social", 1.0}, {"greeting", 0.8}, {"greet", 0.8}, {"friendly", 0.6}, {"chat", 0.6},
			}},
			{string(PurposeFitness), []keyword{
				{"fitness", 1.0}, {"exercise", 0.9}, {"workout", 0.9}, {"training", 0.7}, {"gym", 0.7},
			}},
		},
	},
	{
		dim: DimensionMotion,
		rules: []valueRule{
			{string(MotionIdle), []keyword{
				{"idle", 1.0}, {"standing", 0.8}, {"stand", 0.7}, {"waiting", 0.6}, {"still", 0.6},
			}},
			{string(MotionWalking), []keyword{
				{"walking", 1.0}, {"walk", 0.9}, {"stroll", 0.8}, {"stride", 0.6},
			}},
			{string(MotionRunning), []keyword{
				{"running", 1.0}, {"run", 0.8}, {"sprint", 0.9}, {"jog", 0.8},
			}},
			{string(MotionDancing), []keyword{
				{"dancing", 1.0}, {"dance", 0.9}, {"groove", 0.7}, {"party", 0.5},
			}},
			{string(MotionJumping), []keyword{
				{"jumping", 1.0}, {"jump", 0.9}, {"leap", 0.8}, {"bounce", 0.6},
			}},
			{string(MotionWaving), []keyword{
				{"waving", 1.0}, {"wave", 0.9}, {"hello", 0.6}, {"goodbye", 0.6},
			}},
			{string(MotionFighting), []keyword{
				{"fighting", 1.0}, {"fight", 0.9}, {"combat", 0.8}, {"punch", 0.8}, {"kick", 0.8},
			}},
			{string(MotionSitting), []keyword{
				{"sitting", 1.0}, {"seated", 0.8}, {"sits", 0.7}, {"chair", 0.6},
			}},
		},
	},
}

// ambiguityTrigger is a bare noun that says little about what the user wants
// unless the rest of the query does.
type ambiguityTrigger struct {
	question string

	// fallback values are applied to dimensions that would otherwise stay
	// at their default.
	fallback map[Dimension]string
}

var ambiguityTriggers = map[string]ambiguityTrigger{
	"character": {
		question: "What should the character be doing: walking, running, dancing or standing idle?",
	},
	"person": {
		question: "Should the person look realistic, cartoon or stylized?",
		fallback: map[Dimension]string{DimensionStyle: string(StyleRealistic)},
	},
	"someone": {
		question: "What should they be doing, and in what style?",
		fallback: map[Dimension]string{DimensionStyle: string(StyleRealistic)},
	},
	"model": {
		question: "Is the model for a game, an animation or a presentation?",
	},
	"avatar": {
		question: "Is the avatar for social chat or for a game?",
		fallback: map[Dimension]string{DimensionPurpose: string(PurposeSocial)},
	},
	"figure": {
		question: "What style should the figure have: realistic, cartoon or fantasy?",
	},
	"something": {
		question: "Can you describe the motion or mood you have in mind?",
	},
}
