package problemgen

import (
	"bytes"
	"fmt"
	"strconv"
	"text/template"
)

var problemPromptTmpl = template.Must(template.New("problem").Parse(
	`Generate a single math word problem strictly aligned with the Singapore Primary 5 Mathematics Syllabus (2021) for students aged 10-11.

CHOSEN SUB-STRAND/MICRO-TOPIC (use this ONLY): {{.Topic}}

Syllabus scope (Primary 5):
- Whole numbers: numbers up to 10 million; multiplying and dividing by 10, 100, 1000 and their multiples; order of operations and brackets (no calculator).
- Fractions: whole number ÷ whole number as a fraction; fractions as decimals; adding and subtracting mixed numbers; multiplying fractions, whole numbers and mixed numbers.
- Decimals: multiplying and dividing decimals (up to 3 dp) by 10, 100, 1000 and multiples; converting km/m, m/cm, kg/g and ℓ/ml in decimal form.
- Percentage: part of a whole as a percentage; finding a percentage part; discount, GST (7-9%) and annual interest.
- Rate: amount per unit; finding the rate, total or number of units given the other two.
- Area of triangle: base and height; area = base × height ÷ 2; composite figures of rectangles, squares and triangles.
- Volume of cube and cuboid: unit cubes; cm³ or m³ (no conversion between them); liquid in a rectangular tank; 1 ml = 1 cm³, 1 ℓ = 1000 cm³.
- Geometry: angles on a straight line (180°), at a point (360°), vertically opposite angles; properties of isosceles, equilateral and right-angled triangles, angle sum 180°; parallelogram, rhombus and trapezium; unknown angles without extra construction lines.

Problem-solving heuristics to use naturally: bar models, diagrams, systematic lists, patterns, working backwards, before-after, supposition, simplifying the problem.

Requirements:
1. Use the chosen sub-strand above only.
2. Use a realistic, engaging scenario from a 10-11 year old's daily life, with specific names, objects and numbers.
3. The problem needs 2-4 logical steps and clear, unambiguous language.
4. Use only Primary 5 concepts. The answer must be a single numerical value.
5. Round decimal answers to at most 2 decimal places. Convert fraction answers to decimals (up to 2 dp).
6. Keep numbers in range: whole numbers up to 10 million, decimals up to 3 dp, realistic percentages (5%, 10%, 15%, 20%, 25%).

Return ONLY this JSON object with no additional text, markdown, or explanations:

{
  "problem_text": "[Complete word problem with clear context and all necessary information]",
  "final_answer": 42.5
}

Checklist:
- final_answer is a NUMBER (not a string), rounded to max 2 decimal places
- problem_text is complete and self-contained, with NO solution steps
- NO markdown formatting and nothing outside the JSON object

Generate the problem now.`))

var feedbackPromptTmpl = template.Must(template.New("feedback").Parse(
	`You are a friendly and encouraging Primary 5 math tutor.

Problem: {{.ProblemText}}
Correct Answer: {{.CorrectAnswer}}
Student's Answer: {{.UserAnswer}}
Is Correct: {{.IsCorrect}}

Generate personalized feedback for the student (2-3 sentences).

If correct:
- Praise the student
- Briefly explain why the answer is correct or mention the key concept they applied

If incorrect:
- Be encouraging and positive
- Gently point out where they might have gone wrong
- Give a helpful hint or explain the correct approach without directly giving away the full answer

Keep the tone warm, supportive, and age-appropriate for a 10-11 year old.`))

// BuildProblemPrompt renders the problem-generation prompt for topic.
func BuildProblemPrompt(topic string) string {
	return mustRender(problemPromptTmpl, struct{ Topic string }{topic})
}

// BuildFeedbackPrompt renders the tutor feedback prompt. Correctness is
// stated in the prompt, never left for the model to decide.
func BuildFeedbackPrompt(in FeedbackInput) string {
	return mustRender(feedbackPromptTmpl, struct {
		ProblemText   string
		CorrectAnswer string
		UserAnswer    string
		IsCorrect     bool
	}{
		ProblemText:   in.ProblemText,
		CorrectAnswer: formatNumber(in.CorrectAnswer),
		UserAnswer:    formatNumber(in.UserAnswer),
		IsCorrect:     in.IsCorrect,
	})
}

// mustRender executes tmpl and panics on failure, like template.Must.
// The prompt templates are fixed, so an error here is a programming bug.
func mustRender(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("render %s prompt: %v", tmpl.Name(), err))
	}
	return buf.String()
}

// formatNumber renders f in the shortest form, without exponents.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
