package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"
)

// Offline is a Provider that needs no network or key. It fills a small set
// of word problem templates with random numbers so the app can be tried
// out, and it answers feedback prompts with a fixed message.
type Offline struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewOffline creates an Offline provider. The same seed yields the same
// sequence of problems.
func NewOffline(seed uint64) *Offline {
	return &Offline{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// OfflineFeedback is the reply to every feedback prompt.
const OfflineFeedback = "Thanks for trying! Go through your working one step at a time " +
	"and compare it with the correct answer to see where each number comes from."

func (o *Offline) Model() string { return "offline" }

func (o *Offline) Complete(ctx context.Context, p Prompt) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text := OfflineFeedback
	if p.Purpose == PurposeProblem {
		o.mu.Lock()
		tpl := offlineTemplates[o.rng.IntN(len(offlineTemplates))]
		problem, answer := tpl(o.rng)
		o.mu.Unlock()

		b, err := json.Marshal(struct {
			ProblemText string  `json:"problem_text"`
			FinalAnswer float64 `json:"final_answer"`
		}{problem, answer})
		if err != nil {
			return nil, err
		}
		text = string(b)
	}

	return &Completion{
		Text:  text,
		Model: o.Model(),
		Usage: Usage{Input: len(p.User) / 4, Output: len(text) / 4},
	}, nil
}

// between returns a random int in [lo, hi].
func between(r *rand.Rand, lo, hi int) int { return lo + r.IntN(hi-lo+1) }

var offlineTemplates = []func(r *rand.Rand) (string, float64){
	func(r *rand.Rand) (string, float64) {
		packets, each := between(r, 12, 48), between(r, 15, 36)
		return fmt.Sprintf("A bookshop ordered %d packets of stickers. Each packet holds %d stickers. "+
			"How many stickers did the bookshop order altogether?", packets, each), float64(packets * each)
	},
	func(r *rand.Rand) (string, float64) {
		quarter := between(r, 6, 30)
		total := quarter * 4
		return fmt.Sprintf("Mei Ling had %d marbles. She gave 3/4 of them to her brother. "+
			"How many marbles did she have left?", total), float64(quarter)
	},
	func(r *rand.Rand) (string, float64) {
		pieces := between(r, 3, 8)
		tenths := between(r, 12, 45)
		length := float64(pieces*tenths) / 10
		return fmt.Sprintf("A ribbon %.1f m long is cut into %d pieces of equal length. "+
			"How long is each piece in metres?", length, pieces), float64(tenths) / 10
	},
	func(r *rand.Rand) (string, float64) {
		price := between(r, 3, 15) * 20
		discount := []int{10, 20, 25}[r.IntN(3)]
		return fmt.Sprintf("A school bag costs $%d. During a sale it is sold at a %d%% discount. "+
			"What is the sale price of the bag in dollars?", price, discount),
			float64(price*(100-discount)) / 100
	},
	func(r *rand.Rand) (string, float64) {
		base, height := between(r, 6, 24), between(r, 4, 18)
		return fmt.Sprintf("A triangle has a base of %d cm and a height of %d cm. "+
			"What is its area in square centimetres?", base, height), float64(base*height) / 2
	},
	func(r *rand.Rand) (string, float64) {
		boys, girls, k := between(r, 2, 5), between(r, 2, 5), between(r, 3, 6)
		return fmt.Sprintf("The ratio of boys to girls in a hall is %d : %d. There are %d children in the hall. "+
			"How many girls are there?", boys, girls, (boys+girls)*k), float64(girls * k)
	},
	func(r *rand.Rand) (string, float64) {
		count, avg := between(r, 3, 8), between(r, 12, 40)
		return fmt.Sprintf("The average mass of %d parcels is %d kg. "+
			"What is the total mass of the parcels in kilograms?", count, avg), float64(count * avg)
	},
	func(r *rand.Rand) (string, float64) {
		l, w, h := between(r, 10, 40), between(r, 8, 30), between(r, 5, 20)
		return fmt.Sprintf("A rectangular tank is %d cm long, %d cm wide and %d cm high. "+
			"What is the volume of the tank in cubic centimetres?", l, w, h), float64(l * w * h)
	},
}
