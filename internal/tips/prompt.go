package tips

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindora-app/mindora/internal/assessment"
)

const tipSystemPrompt = `You are a calm, practical workplace wellness coach. You write short tips that an office worker can use during a normal workday without special equipment.`

func buildTipUserMessage(day time.Time, recent []string) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Date: %s\n", day.Format("Monday, 2 January 2006")))
	if len(recent) > 0 {
		b.WriteString("\nRecent tips (do not repeat these):\n")
		for _, r := range recent {
			b.WriteString(fmt.Sprintf("- %s\n", r))
		}
	}

	b.WriteString(`
Instructions:
Write one wellness tip for today.
1. Keep it to one or two sentences.
2. Make it concrete and doable in under five minutes.
3. Do not give medical advice.`)

	return b.String()
}

const promptSystemPrompt = `You write gentle journaling prompts for people managing work stress. You never diagnose and never give medical advice.`

func buildPromptUserMessage(zone assessment.MoodZone) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Latest mood check: %s\n", assessment.MoodLabel(zone)))
	b.WriteString(`
Instructions:
Write one open reflective question for today's journal entry.
1. Match the tone to the mood check: lighter when managing well, softer when stress is high.
2. Keep it under 30 words.`)

	return b.String()
}
