package prompt

import "fmt"

const optimizeFromImageTemplate = `Analyze the provided image and generate an optimized text prompt for Stable Diffusion image-to-image generation. Your response should:
1. Describe the image content:
   - Main subject(s) and their characteristics
   - Background and setting
   - Composition and framing
2. Specify visual elements:
   - Color palette and dominant colors
   - Lighting conditions and effects
   - Textures and materials
   - Style (e.g., photorealistic, painterly, cartoon)
3. Capture the mood and atmosphere
4. Incorporate artistic techniques or references if applicable
5. Use Stable Diffusion-specific formatting:
   - Separate elements with commas
   - Use () for emphasis and [] for de-emphasis
   - Include relevant artistic or technical terms
6. Suggest 2-3 potential creative variations or enhancements
Initial prompt (if any):
%s

Based on this initial prompt and the image analysis, create an enhanced, comprehensive prompt that maintains the original intent while improving its effectiveness for Stable Diffusion.

Provide only the generated prompt, formatted for direct use in Stable Diffusion. Aim for 50-75 words. Do not include explanations or notes.

`

// OptimizeFromImage builds the prompt-optimization instruction that rides
// alongside an attached image. initial may be empty.
func OptimizeFromImage(initial string) string {
	return fmt.Sprintf(optimizeFromImageTemplate, initial)
}

const optimizeFromTextTemplate = `Analyze the provided text and generate an optimized text prompt for Stable Diffusion text-to-image generation. Your response should:

1. Describe the image content:
   - Main subject(s) and their characteristics
   - Background and setting
   - Composition and framing
2. Specify visual elements:
   - Color palette and dominant colors
   - Lighting conditions and effects
   - Textures and materials
   - Style (e.g., photorealistic, painterly, cartoon)
3. Capture the mood and atmosphere
4. Incorporate artistic techniques or references if applicable
5. Use Stable Diffusion-specific formatting:
   - Separate elements with commas
   - Use () for emphasis and [] for de-emphasis
   - Include relevant artistic or technical terms

Provided text:
%s

Based on this text analysis, create an enhanced, comprehensive prompt that maintains the original intent while improving its effectiveness for Stable Diffusion.

Provide only the generated prompt, formatted for direct use in Stable Diffusion. Aim for 50-75 words. Do not include explanations, notes, or variations.
`

// OptimizeFromText builds the prompt-optimization instruction for a plain
// text description.
func OptimizeFromText(sourceText string) string {
	return fmt.Sprintf(optimizeFromTextTemplate, sourceText)
}
