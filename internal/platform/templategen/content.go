package templategen

import (
	"fmt"
	"strings"
)

// ContentKey is the structured lookup key for the topic content table. Using
// a typed pair instead of ad hoc string concatenation keeps a subject named
// "History-Medicine" from colliding with subject "History", topic "Medicine".
type ContentKey struct {
	Subject string
	Topic   string
}

// KeyTerm is a term/definition pair used for terminology sections and
// definition-style flashcards.
type KeyTerm struct {
	Term       string
	Definition string
}

// TopicContent holds the source material for one subject/topic pair. Every
// generation operation draws from these pools: notes render all of them,
// flashcards and exam questions cycle through them.
type TopicContent struct {
	Introduction string
	Concepts     []string
	Examples     []string
	KeyTerms     []KeyTerm
}

// normalizeKey lowercases and trims a key so lookups are insensitive to the
// casing users type topics in.
func normalizeKey(subject, topic string) ContentKey {
	return ContentKey{
		Subject: strings.ToLower(strings.TrimSpace(subject)),
		Topic:   strings.ToLower(strings.TrimSpace(topic)),
	}
}

// contentTable is the static source material for known subject/topic pairs.
// Pairs not listed here fall back to genericContent.
var contentTable = map[ContentKey]TopicContent{
	normalizeKey("Mathematics", "Algebra"): {
		Introduction: "Algebra generalises arithmetic by letting symbols stand for unknown " +
			"or variable quantities, turning numeric puzzles into statements that can be " +
			"manipulated and solved systematically.",
		Concepts: []string{
			"solving linear equations",
			"expanding and factorising expressions",
			"simultaneous equations",
			"quadratic equations and their roots",
		},
		Examples: []string{
			"Solve 3x + 7 = 22 by subtracting 7 from both sides and dividing by 3, giving x = 5.",
			"Factorise x² + 5x + 6 into (x + 2)(x + 3) by finding two numbers that sum to 5 and multiply to 6.",
			"Solve the pair x + y = 10 and x − y = 2 by adding the equations to eliminate y, giving x = 6, y = 4.",
		},
		KeyTerms: []KeyTerm{
			{"variable", "a symbol, usually a letter, standing for an unknown or changeable value"},
			{"coefficient", "the numeric factor multiplying a variable in a term"},
			{"equation", "a statement that two expressions are equal, solvable for unknowns"},
			{"factorising", "rewriting an expression as a product of simpler factors"},
		},
	},
	normalizeKey("Mathematics", "Geometry"): {
		Introduction: "Geometry studies shape, size, and the properties of space, from the " +
			"angles of a triangle to the symmetries of three-dimensional solids.",
		Concepts: []string{
			"angle rules and parallel lines",
			"properties of triangles and quadrilaterals",
			"Pythagoras' theorem",
			"circle theorems",
		},
		Examples: []string{
			"Find the hypotenuse of a right triangle with legs 3 and 4 using a² + b² = c², giving c = 5.",
			"Use the fact that angles on a straight line sum to 180° to find a missing angle of 65° next to 115°.",
		},
		KeyTerms: []KeyTerm{
			{"hypotenuse", "the side of a right triangle opposite the right angle"},
			{"congruent", "identical in shape and size"},
			{"tangent", "a line touching a circle at exactly one point"},
		},
	},
	normalizeKey("Physics", "Forces"): {
		Introduction: "Forces describe the pushes and pulls that change how objects move, " +
			"linking everyday motion to Newton's laws.",
		Concepts: []string{
			"Newton's three laws of motion",
			"resultant forces and equilibrium",
			"weight, mass and gravity",
			"friction and drag",
		},
		Examples: []string{
			"A 2 kg trolley accelerating at 3 m/s² experiences a resultant force of F = ma = 6 N.",
			"A book resting on a table is in equilibrium: its weight is balanced by the normal contact force.",
		},
		KeyTerms: []KeyTerm{
			{"resultant force", "the single force equivalent to all forces acting on an object"},
			{"inertia", "the tendency of an object to resist changes in its motion"},
			{"newton", "the SI unit of force, one kilogram metre per second squared"},
		},
	},
	normalizeKey("Chemistry", "Atomic Structure"): {
		Introduction: "Atomic structure explains matter in terms of protons, neutrons and " +
			"electrons, and how their arrangement gives each element its chemistry.",
		Concepts: []string{
			"protons, neutrons and electrons",
			"electron shells and configuration",
			"isotopes and relative atomic mass",
		},
		Examples: []string{
			"Chlorine-35 and chlorine-37 are isotopes: same proton count, different neutron counts.",
			"Sodium's configuration 2,8,1 explains why it readily loses one electron to form Na⁺.",
		},
		KeyTerms: []KeyTerm{
			{"isotope", "atoms of the same element with different numbers of neutrons"},
			{"atomic number", "the number of protons in an atom's nucleus"},
			{"ion", "an atom or group of atoms carrying an electric charge"},
		},
	},
	normalizeKey("English Literature", "Macbeth"): {
		Introduction: "Macbeth traces the corrosion of ambition: a loyal soldier murders his " +
			"king and is unmade by guilt, paranoia, and the prophecies he chose to trust.",
		Concepts: []string{
			"ambition and its corruption",
			"appearance versus reality",
			"guilt and conscience",
			"the supernatural and fate",
		},
		Examples: []string{
			"The dagger soliloquy dramatises Macbeth's divided mind before Duncan's murder.",
			"Lady Macbeth's sleepwalking scene shows guilt surfacing despite her earlier resolve.",
		},
		KeyTerms: []KeyTerm{
			{"soliloquy", "a speech revealing a character's private thoughts to the audience"},
			{"hamartia", "the fatal flaw that drives a tragic hero's downfall"},
			{"dramatic irony", "when the audience knows more than the characters on stage"},
		},
	},
	normalizeKey("Biology", "Cell Biology"): {
		Introduction: "Cell biology examines the basic unit of life: how cells are built, " +
			"how they divide, and how substances move into and out of them.",
		Concepts: []string{
			"animal and plant cell structure",
			"cell division by mitosis",
			"diffusion, osmosis and active transport",
		},
		Examples: []string{
			"Root hair cells absorb mineral ions against a concentration gradient by active transport.",
			"A plant cell placed in pure water gains mass as water moves in by osmosis.",
		},
		KeyTerms: []KeyTerm{
			{"organelle", "a specialised structure within a cell, such as a mitochondrion"},
			{"osmosis", "the diffusion of water across a partially permeable membrane"},
			{"mitosis", "cell division producing two genetically identical daughter cells"},
		},
	},
}

// lookupContent returns the content record for the subject and topic-or-book
// pair, falling back to a synthesized generic record when the pair is unknown.
func lookupContent(subject, topic string) TopicContent {
	if content, ok := contentTable[normalizeKey(subject, topic)]; ok {
		return content
	}
	return genericContent(topic)
}

// lookupFocusedContent resolves content for a subtopic-narrowed request:
// a curated entry for the subtopic wins, then the topic's entry, then generic
// templates built around the narrowest name given.
func lookupFocusedContent(subject, topic, subtopic string) TopicContent {
	if subtopic != "" {
		if content, ok := contentTable[normalizeKey(subject, subtopic)]; ok {
			return content
		}
	}
	if content, ok := contentTable[normalizeKey(subject, topic)]; ok {
		return content
	}
	if subtopic != "" {
		return genericContent(subtopic)
	}
	return genericContent(topic)
}

// genericContent synthesizes a content record for an unknown topic by
// interpolating the literal topic name into generic templates. Generation
// therefore never fails on an unrecognised classification.
func genericContent(topic string) TopicContent {
	return TopicContent{
		Introduction: fmt.Sprintf(
			"This lesson introduces %s, building from first principles towards "+
				"exam-ready understanding of the area.", topic),
		Concepts: []string{
			fmt.Sprintf("core principles of %s", topic),
			fmt.Sprintf("key methods and techniques in %s", topic),
			fmt.Sprintf("common applications of %s", topic),
		},
		Examples: []string{
			fmt.Sprintf("A worked example applying the core principles of %s to a typical exam-style problem.", topic),
			fmt.Sprintf("A second example showing how the methods of %s transfer to an unfamiliar context.", topic),
		},
		KeyTerms: []KeyTerm{
			{
				Term:       fmt.Sprintf("%s fundamentals", topic),
				Definition: fmt.Sprintf("the foundational ideas every treatment of %s rests on", topic),
			},
			{
				Term:       fmt.Sprintf("%s in practice", topic),
				Definition: fmt.Sprintf("how the ideas of %s are applied to concrete problems", topic),
			},
		},
	}
}
