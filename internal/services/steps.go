package services

import (
	"fmt"

	"drawing-tutor-backend/internal/models"
)

// Fixed content for the drawing pipeline. The step table and both prompt
// templates are static data: every tutorial gets the same four stages, and
// the prompts only vary in whether the subject was extracted from a photo.

const subjectExtractionPrompt = `Analyze this image and identify the main subject in 2-5 words.
Focus on what would be the primary drawing subject.
Examples: "a sleeping cat", "mountain landscape", "bowl of fruit", "vintage car"
Just return the subject description, nothing else.`

const topicPromptTemplate = `Show a 4-step drawing tutorial of %s in the provided grid layout.
Create 1 image, but show each step of the tutorial separately. Use the provided grid.
Do not include any text, numbers, labels, or captions anywhere in the artwork.
1. Top left quadrant: Basic shapes (simple geometric forms)
2. Top right quadrant: Refined sketch (recognizable proportions)
3. Bottom left quadrant: Line work and shading (clean outlines, values and depth)
4. Bottom right quadrant: Final details (texture, highlights, finishing touches)`

const imagePromptTemplate = `Analyze the main subject in this image: %s.
Show a 4-step drawing tutorial of that subject in the provided grid layout.
Create 1 image, but show each step of the tutorial separately. Use the provided grid.
Do not include any text, numbers, labels, or captions anywhere in the artwork.
1. Top left quadrant: Basic shapes (simple geometric forms)
2. Top right quadrant: Refined sketch (recognizable proportions)
3. Bottom left quadrant: Line work and shading (clean outlines, values and depth)
4. Bottom right quadrant: Final details (texture, highlights, finishing touches)`

var stepDescriptions = []models.Step{
	{
		StepNumber: 1,
		Title:      "Basic Shapes",
		Description: `Break the subject down into simple geometric shapes: circles, ovals, rectangles and triangles. Establish the overall proportions and composition before anything else.
Tips:
- Keep your lines light so they are easy to adjust
- Compare the sizes of the shapes against each other
- Block in the whole subject before refining any single part`,
	},
	{
		StepNumber: 2,
		Title:      "Refined Sketch",
		Description: `Refine the basic shapes into recognizable forms. Add structure and secondary details while keeping the lines loose and exploratory.
Tips:
- Work over the whole drawing, not one corner at a time
- Check proportions against the basic shapes underneath
- It is fine to redraw a line several times at this stage`,
	},
	{
		StepNumber: 3,
		Title:      "Line Work & Shading",
		Description: `Commit to clean, confident outlines, then establish values. Decide where the light comes from and build up shadows and midtones to give the drawing depth.
Tips:
- Draw each final line in one deliberate stroke
- Squint at the subject to simplify the values
- Shade in the direction of the form`,
	},
	{
		StepNumber: 4,
		Title:      "Final Details",
		Description: `Add texture, highlights and the small touches that bring the drawing to life. Deepen the darkest shadows and lift the brightest highlights last.
Tips:
- Stop before the drawing feels overworked
- Reserve the strongest contrast for the focal point
- Step back and compare the result with the subject`,
	},
}

// StepDescriptions returns the fixed four-step table included with every
// tutorial. The content is static, it is not derived from the generated
// image.
func StepDescriptions() []models.Step {
	steps := make([]models.Step, len(stepDescriptions))
	copy(steps, stepDescriptions)
	return steps
}

// BuildTutorialPrompt renders the generation prompt for the given subject.
// The image variant references an already-identified subject; both lay the
// four steps out into the quadrants of the grid template.
func BuildTutorialPrompt(subject string, inputType models.InputType) string {
	if inputType == models.InputTypeImage {
		return fmt.Sprintf(imagePromptTemplate, subject)
	}
	return fmt.Sprintf(topicPromptTemplate, subject)
}
