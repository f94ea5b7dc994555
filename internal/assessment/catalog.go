package assessment

import "fmt"

// burnoutCategories is the fixed burnout self-assessment, in display order.
var burnoutCategories = []Category{
	{
		ID:          "exhaustion",
		Title:       "Exhaustion",
		Description: "Measures physical and mental exhaustion related to work",
		Questions: []Question{
			{ID: "q1", Text: "At work, I feel mentally exhausted"},
			{ID: "q2", Text: "Everything I do at work requires a great deal of effort"},
			{ID: "q3", Text: "After a day at work, I find it hard to recover my energy"},
			{ID: "q4", Text: "At work, I feel physically exhausted"},
			{ID: "q5", Text: "When I get up in the morning, I lack the energy to start a new day at work"},
			{ID: "q6", Text: "I want to be active at work, but somehow, I am unable to manage"},
			{ID: "q7", Text: "When I exert myself at work, I quickly get tired"},
			{ID: "q8", Text: "At the end of my working day, I feel mentally exhausted and drained"},
		},
		Bands: Bands{
			Low:      "Normal energy levels",
			Moderate: "Mild exhaustion signs",
			High:     "Significant exhaustion",
			Severe:   "Critical exhaustion level",
		},
	},
	{
		ID:          "mental-distance",
		Title:       "Mental Distance",
		Description: "Assesses emotional detachment and disengagement from work",
		Questions: []Question{
			{ID: "q9", Text: "I struggle to find any enthusiasm for my work"},
			{ID: "q10", Text: "At work, I do not think much about what I am doing and I function on autopilot"},
			{ID: "q11", Text: "I feel a strong aversion towards my job"},
			{ID: "q12", Text: "I feel indifferent about my job"},
			{ID: "q13", Text: "I'm cynical about what my work means to others"},
		},
		Bands: Bands{
			Low:      "Healthy engagement",
			Moderate: "Mild disconnection",
			High:     "Significant detachment",
			Severe:   "Severe work aversion",
		},
	},
	{
		ID:          "cognitive-impairment",
		Title:       "Cognitive Impairment",
		Description: "Evaluates concentration and cognitive function at work",
		Questions: []Question{
			{ID: "q14", Text: "At work, I have trouble staying focused"},
			{ID: "q15", Text: "At work I struggle to think clearly"},
			{ID: "q16", Text: "I'm forgetful and distracted at work"},
			{ID: "q17", Text: "When I'm working, I have trouble concentrating"},
			{ID: "q18", Text: "I make mistakes in my work because I have my mind on other things"},
		},
		Bands: Bands{
			Low:      "Sharp cognitive function",
			Moderate: "Occasional focus issues",
			High:     "Frequent concentration problems",
			Severe:   "Severe cognitive impairment",
		},
	},
	{
		ID:          "emotional-impairment",
		Title:       "Emotional Impairment",
		Description: "Measures emotional control and stability at work",
		Questions: []Question{
			{ID: "q19", Text: "At work, I feel unable to control my emotions"},
			{ID: "q20", Text: "I do not recognize myself in the way I react emotionally at work"},
			{ID: "q21", Text: "During my work I become irritable when things don't go my way"},
			{ID: "q22", Text: "I get upset or sad at work without knowing why"},
			{ID: "q23", Text: "At work I may overreact unintentionally"},
		},
		Bands: Bands{
			Low:      "Emotional stability",
			Moderate: "Occasional emotional challenges",
			High:     "Frequent emotional dysregulation",
			Severe:   "Severe emotional impairment",
		},
	},
	{
		ID:          "psychological-complaints",
		Title:       "Psychological Complaints",
		Description: "Assesses general psychological well-being",
		Questions: []Question{
			{ID: "q24", Text: "I have trouble falling or staying asleep"},
			{ID: "q25", Text: "I tend to worry"},
			{ID: "q26", Text: "I feel tense and stressed"},
			{ID: "q27", Text: "I feel anxious and/or suffer from panic attacks"},
			{ID: "q28", Text: "Noise and crowds disturb me"},
		},
		Bands: Bands{
			Low:      "Good psychological health",
			Moderate: "Mild psychological strain",
			High:     "Significant psychological distress",
			Severe:   "Severe psychological symptoms",
		},
	},
	{
		ID:          "psychosomatic-complaints",
		Title:       "Psychosomatic Complaints",
		Description: "Measures physical symptoms related to stress",
		Questions: []Question{
			{ID: "q29", Text: "I suffer from palpitations or chest pain"},
			{ID: "q30", Text: "I suffer from stomach and/or intestinal complaints"},
			{ID: "q31", Text: "I suffer from headaches"},
			{ID: "q32", Text: "I suffer from muscle pain, for example in the neck, shoulder or back"},
			{ID: "q33", Text: "I often get sick"},
		},
		Bands: Bands{
			Low:      "Good physical health",
			Moderate: "Mild physical symptoms",
			High:     "Frequent physical complaints",
			Severe:   "Chronic physical symptoms",
		},
	},
}

// BurnoutCategories returns the burnout assessment categories in display
// order. The returned slice is a copy.
func BurnoutCategories() []Category {
	out := make([]Category, len(burnoutCategories))
	copy(out, burnoutCategories)
	return out
}

// GetCategory looks up a burnout category by id.
func GetCategory(id string) (Category, error) {
	for _, c := range burnoutCategories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("unknown assessment category %q", id)
}

// Validate checks catalog invariants: non-empty categories and globally
// unique question ids.
func Validate(categories []Category) error {
	seen := make(map[string]string)
	for _, c := range categories {
		if len(c.Questions) == 0 {
			return fmt.Errorf("category %q has no questions", c.ID)
		}
		for _, q := range c.Questions {
			if prev, ok := seen[q.ID]; ok {
				return fmt.Errorf("question %q appears in both %q and %q", q.ID, prev, c.ID)
			}
			seen[q.ID] = c.ID
		}
	}
	return nil
}
