package prompt

import (
	"fmt"
	"strings"
)

// NumVariants is the number of icons generated for each user request: each icon is
// generated from a prompt that uses a different variation phrase
const NumVariants = 4

// variations returns the phrase that describes the icon for each variant index
func variations(theme string) [NumVariants]string {
	return [NumVariants]string{
		fmt.Sprintf("a %s icon", theme),
		fmt.Sprintf("a different %s icon", theme),
		fmt.Sprintf("another %s icon", theme),
		fmt.Sprintf("one more %s icon", theme),
	}
}

// Build formats the text prompt used to generate a single icon. variant selects which
// variation phrase is used, falling back to the first if out of range. If colors are
// supplied, they're passed to the image generation model verbatim; otherwise the model
// picks its own palette.
func Build(theme string, styleTag string, variant int, colors []string) string {
	phrases := variations(strings.TrimSpace(theme))
	if variant < 0 || variant >= NumVariants {
		variant = 0
	}

	prompt := fmt.Sprintf("A single %s, %s, centered composition, 512x512 square format, no text, no logos, clean white background.", phrases[variant], styleTag)
	if len(colors) > 0 {
		prompt += fmt.Sprintf(" Use a color palette based on these hex colors: %s.", strings.Join(colors, ", "))
	}
	return strings.TrimSpace(prompt)
}

// BuildSet returns one prompt for each variant, in variant order
func BuildSet(theme string, styleTag string, colors []string) []string {
	prompts := make([]string, 0, NumVariants)
	for variant := 0; variant < NumVariants; variant++ {
		prompts = append(prompts, Build(theme, styleTag, variant, colors))
	}
	return prompts
}
