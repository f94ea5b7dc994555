package tips

import "github.com/mindora-app/mindora/internal/assessment"

var fallbackTips = []Tip{
	{Title: "5-4-3-2-1 grounding", Body: "Name 5 things you can see, 4 things you can touch, 3 things you can hear, 2 things you can smell, and 1 thing you can taste."},
	{Title: "Micro-breaks", Body: "Stand up and look away from your screen for one minute every hour. Let your eyes rest on something far away."},
	{Title: "Single-tasking", Body: "Pick one task, close the tabs it does not need, and give it twenty undivided minutes."},
	{Title: "Hydrate", Body: "Keep a glass of water on your desk and finish it before lunch. Mild dehydration shows up as fatigue and poor focus."},
	{Title: "End-of-day shutdown", Body: "Write down tomorrow's first task before you log off. It makes it easier to stop thinking about work tonight."},
	{Title: "Breathe out longer", Body: "Exhale for longer than you inhale for a few breaths. A slow out-breath tells your body it is safe to settle."},
	{Title: "Walk it off", Body: "Take your next call on foot if you can. Ten minutes of walking lifts energy more reliably than another coffee."},
}

var fallbackPrompts = map[assessment.MoodZone][]string{
	assessment.MoodUnmeasured: {
		"What is one thing that went well today, and why?",
		"What is taking up most of your attention right now?",
	},
	assessment.MoodGreen: {
		"What helped you feel steady today? How could you do more of it?",
		"Who or what are you grateful for this week?",
	},
	assessment.MoodYellow: {
		"What is one worry you can set down for tonight? Write it here so you do not have to hold it.",
		"Which part of today drained you the most, and what would make it lighter next time?",
	},
	assessment.MoodRed: {
		"Describe what is weighing on you right now, without judging it.",
		"What is one small kindness you could offer yourself in the next hour?",
	},
}
