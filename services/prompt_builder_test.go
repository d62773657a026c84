package services

import (
	"strategist/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildStrategyPrompt(t *testing.T) {
	inputs := models.MarketingInputs{
		Product:    "wine club",
		Audience:   "millennials",
		LaunchGoal: "awareness",
		BrandTone:  "casual",
	}

	prompt := BuildStrategyPrompt(inputs)
	for _, v := range []string{"wine club", "millennials", "awareness", "casual"} {
		assert.Contains(t, prompt, v)
	}
	assert.Contains(t, prompt, "product:      wine club\n")
	assert.Contains(t, prompt, "5. SEO Fast-Track")
}

func TestBuildStrategyPrompt_EmptyInputsForwarded(t *testing.T) {
	prompt := BuildStrategyPrompt(models.MarketingInputs{})
	assert.Contains(t, prompt, "product:      \n")
	assert.Contains(t, prompt, "brand_tone:   \n")
}

func TestBuildVideoPrompt(t *testing.T) {
	params := DefaultVideoParams()
	params.Refinements = models.NewRefinementSet("dramatic shadows and high contrast lighting", "presenter naturally holding a fine wine glass")

	prompt := BuildVideoPrompt(params)
	assert.True(t, strings.HasPrefix(prompt, "A professional high-quality video for a wine brand."))
	assert.Contains(t, prompt, "Setting: Modern Studio.")
	assert.Contains(t, prompt, "Presenter: A 21-30 year old Female with a Approachable style.")
	assert.Contains(t, prompt, "Action: dramatic shadows and high contrast lighting, presenter naturally holding a fine wine glass.")
	assert.Contains(t, prompt, "Script context: "+params.Script)
	assert.True(t, strings.HasSuffix(prompt, "The video should feel cinematic and high-end."))
}
