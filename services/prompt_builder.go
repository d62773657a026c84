package services

import (
	"fmt"
	"strategist/models"
	"strings"
)

// SystemInstruction is sent with every strategy request
const SystemInstruction = `You are Gemini 3, acting as a full-stack AI marketing strategist for a start-up.
Your output must be formatted in clean Markdown.
Use clear headers (##, ###).
Do not include conversational filler ("Here is your plan...").
Go straight to the high-quality output.`

const strategyPromptTemplate = `
# INPUTS
product:      %s
audience:     %s
launch_goal:  %s
brand_tone:   %s

# TASKS
1. Customer Insight
   • Build an Ideal Customer Profile (ICP).
   • List top pain points, desired gains, and buying triggers.
   • Suggest 3 positioning angles that will resonate.

2. Conversion Messaging
   • Craft a hook-driven landing page (headline, sub-headline, CTA).
   • Give 3 viral headline options.
   • Produce a Messaging Matrix: Pain → Promise → Proof → CTA.

3. Content Engine
   • Create a 7-day content plan for Facebook, Threads, IG and X
   • Include daily post titles, themes, and tone tips.
   • Add 1 short-form video idea that supports the plan.

4. Email Playbook
   • Write 3 cold-email variations:
     ① Value-first, ② Problem-Agitate-Solve, ③ Social-proof / case-study.

5. SEO Fast-Track
   • Propose 1 SEO topic cluster that aligns with the product.
   • Give 5 blog-post titles targeting mid → high-intent keywords.
   • Outline a “pillar + supporting posts” structure.

# OUTPUT RULES
• Use clear section headers (e.g. ## ICP, ## Landing Copy, ## SEO Titles).
• Format in Markdown for easy reading.
• No chain-of-thought or reasoning—deliver polished results only.
`

// DefaultInputs returns the inputs the strategy form starts with
func DefaultInputs() models.MarketingInputs {
	return models.MarketingInputs{
		Product:    "e-commerce website for wine retail in Hong Kong - www.chaliceandcru.com",
		Audience:   "Wine enthusiasts, well-educated millennials and gen x, WSET students, locals and expats, english-speaking",
		LaunchGoal: "build awareness, generate sales",
		BrandTone:  "casual, educational, knowledgeable, like talking to bar-staff or a sommelier who knows their stuff but doesn't show off about it",
	}
}

// BuildStrategyPrompt interpolates the inputs verbatim into the strategy prompt.
// Inputs are not validated; empty fields are forwarded as-is.
func BuildStrategyPrompt(inputs models.MarketingInputs) string {
	return fmt.Sprintf(strategyPromptTemplate,
		inputs.Product,
		inputs.Audience,
		inputs.LaunchGoal,
		inputs.BrandTone,
	)
}

// BuildVideoPrompt describes the presenter video for the video collaborator
func BuildVideoPrompt(params models.VideoParams) string {
	var b strings.Builder
	b.WriteString("A professional high-quality video for a wine brand. \n")
	fmt.Fprintf(&b, "    Setting: %s. \n", params.Setting)
	fmt.Fprintf(&b, "    Presenter: A %s year old %s with a %s style. \n",
		params.PresenterAge, params.PresenterGender, params.PresenterStyle)
	fmt.Fprintf(&b, "    Action: %s. \n", strings.Join(params.Refinements.Values(), ", "))
	fmt.Fprintf(&b, "    Script context: %s. \n", params.Script)
	b.WriteString("    The video should feel cinematic and high-end.")
	return b.String()
}
