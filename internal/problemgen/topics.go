package problemgen

import "math/rand/v2"

// Topics is the Primary 5 (Singapore 2021 syllabus) catalog of sub-strands
// a generated problem may target. Each entry is "STRAND - focus".
var Topics = []string{
	// Whole numbers
	"WHOLE NUMBERS - Numbers up to 10 million: reading & writing in numerals and words",
	"WHOLE NUMBERS - Four operations: order of operations with brackets (no calculator)",
	"WHOLE NUMBERS - Multiply/divide by 10, 100, 1000 and multiples (no calculator)",

	// Fractions
	"FRACTIONS - Division: whole number ÷ whole number with quotient as a fraction (e.g., 3 ÷ 4 = 3/4)",
	"FRACTIONS - Expressing fractions as decimals",
	"FRACTIONS - Add and subtract mixed numbers",
	"FRACTIONS - Multiply proper/improper fraction × whole number (no calculator)",
	"FRACTIONS - Multiply proper fraction × proper/improper fraction (no calculator)",
	"FRACTIONS - Multiply two improper fractions",
	"FRACTIONS - Multiply mixed number × whole number",

	// Decimals
	"DECIMALS - Multiply/divide decimals (≤ 3 dp) by 10/100/1000 and multiples (no calculator)",
	"DECIMALS - Unit conversions in decimal form: kilometres ↔ metres",
	"DECIMALS - Unit conversions in decimal form: metres ↔ centimetres",
	"DECIMALS - Unit conversions in decimal form: kilograms ↔ grams",
	"DECIMALS - Unit conversions in decimal form: litres ↔ millilitres",

	// Percentage
	"PERCENTAGE - Expressing part of a whole as a percentage; use of %",
	"PERCENTAGE - Finding a percentage part of a whole",
	"PERCENTAGE - Real-world: finding discount / GST / annual interest",

	// Rate
	"RATE - rate as amount per unit; find rate, total, or units given two quantities",

	// Area and volume
	"AREA - Triangle: identify base & height; area = base × height ÷ 2",
	"AREA - Composite figures made of rectangles, squares, triangles",
	"VOLUME - Cube/Cuboid: build with unit cubes; volume = length × width × height",
	"VOLUME - Liquid volume in rectangular tank; 1 ml = 1 cm³; 1 ℓ = 1000 cm³",

	// Geometry
	"GEOMETRY - Angles on a straight line (180°); at a point (360°); vertically opposite angles",
	"GEOMETRY - Triangles: properties (isosceles/equilateral/right-angled); angle sum = 180°",
	"GEOMETRY - Quadrilaterals: properties (parallelogram/rhombus/trapezium); find unknown angles",
}

// TopicPicker selects one topic from a non-empty catalog.
type TopicPicker func(topics []string) string

// RandomTopic picks uniformly at random.
func RandomTopic(topics []string) string {
	return topics[rand.IntN(len(topics))]
}

// FixedTopic returns a picker that always chooses topic.
func FixedTopic(topic string) TopicPicker {
	return func([]string) string { return topic }
}
