// Castmatch - Explainable 3D Character Selection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/castmatch

package vocab

// Axes: locomotion, energy, expressiveness, combat, calm, social.
var defaultEntries = []Entry{
	{"walk", Vector{.9, .4, .1, 0, .3, .1}, []string{"walking", "walks", "walker", "stroll", "strolling", "stride"}},
	{"run", Vector{.9, .9, .1, .1, 0, 0}, []string{"running", "runs", "sprint", "sprinting", "jog", "jogging"}},
	{"jump", Vector{.6, .9, .3, .1, 0, 0}, []string{"jumping", "jumps", "leap", "hop"}},
	{"dance", Vector{.4, .8, .9, 0, .1, .5}, []string{"dancing", "dances", "dancer", "groove"}},
	{"idle", Vector{0, .1, .1, 0, .9, .1}, []string{"idling", "waiting"}},
	{"sit", Vector{0, 0, .1, 0, 1, .2}, []string{"sitting", "seated", "sits", "chair"}},
	{"wave", Vector{0, .3, .6, 0, .3, .9}, []string{"waving", "waves"}},
	{"fight", Vector{.3, .9, .3, 1, 0, 0}, []string{"fighting", "fighter", "combat"}},
	{"punch", Vector{.1, .8, .2, .9, 0, 0}, []string{"boxing", "punching"}},
	{"kick", Vector{.2, .8, .2, .9, 0, 0}, []string{"kicking"}},
	{"motion", Vector{.5, .5, .3, .1, .1, .1}, []string{"moving", "movement", "move"}},
	{"animation", Vector{.4, .4, .4, .1, .2, .2}, []string{"animated", "animate"}},
	{"relaxed", Vector{.1, .1, .2, 0, .8, .2}, []string{"relax"}},
	{"calm", Vector{0, 0, .1, 0, 1, .1}, nil},
	{"fast", Vector{.6, 1, .1, .1, 0, 0}, []string{"quick", "speedy"}},
	{"energetic", Vector{.3, 1, .6, .1, 0, .2}, []string{"lively"}},
	{"happy", Vector{.1, .6, .8, 0, .2, .6}, []string{"cheerful", "joyful"}},
	{"friendly", Vector{0, .3, .5, 0, .3, 1}, nil},
	{"greet", Vector{0, .3, .5, 0, .2, 1}, []string{"hello", "greeting", "hi"}},
	{"party", Vector{.2, .8, .8, 0, 0, .8}, nil},
	{"music", Vector{.2, .6, .8, 0, .2, .4}, nil},
	{"aggressive", Vector{.2, .9, .4, .9, 0, 0}, nil},
	{"martial", Vector{.2, .8, .3, 1, 0, 0}, nil},
	{"rest", Vector{0, 0, 0, 0, 1, .1}, []string{"resting"}},
	{"stand", Vector{0, .1, .1, 0, .8, .1}, []string{"standing"}},
	{"pose", Vector{0, .1, .5, 0, .6, .2}, nil},
	{"present", Vector{.1, .3, .6, 0, .4, .8}, []string{"presenter", "presentation"}},
	{"talk", Vector{0, .2, .6, 0, .4, .9}, []string{"speaking", "talking", "speech"}},
	{"exercise", Vector{.6, .9, .2, .2, 0, .1}, []string{"workout", "fitness", "training"}},
	{"sport", Vector{.7, .9, .2, .2, 0, .2}, []string{"athletic"}},
	{"robot", Vector{.3, .4, 0, .2, .3, 0}, []string{"robotic", "android", "mech", "mechanical"}},
	{"stiff", Vector{.3, .3, 0, .1, .4, 0}, nil},
	{"cartoon", Vector{.3, .6, .9, 0, .1, .4}, []string{"toon"}},
	{"knight", Vector{.2, .5, .2, .8, .2, 0}, []string{"sword"}},
	{"hero", Vector{.3, .7, .5, .6, .1, .2}, nil},
	{"gentle", Vector{.2, .1, .3, 0, .7, .3}, nil},
}

// DefaultEntries returns a copy of the built-in table.
func DefaultEntries() []Entry {
	out := make([]Entry, len(defaultEntries))
	for i, e := range defaultEntries {
		out[i] = Entry{Word: e.Word, Vector: e.Vector, Synonyms: append([]string(nil), e.Synonyms...)}
	}
	return out
}

// Default builds the built-in vocabulary.
func Default() (*Vocabulary, error) {
	return New(DefaultEntries())
}
