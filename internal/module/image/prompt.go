package image

import "strings"

// photoPromptTemplate drives the image model toward a studio product
// shot. Placeholders are substituted by buildPrompt.
const photoPromptTemplate = `
Create A professional, ultra-detailed close-up studio photograph of the "{product_name}" with brand name {brand_name}.
The image should vividly showcase its key features as described: "{product_description}".
The product is the sole focus, elegantly placed on a clean, minimalist, out-of-focus surface.

The lighting is dramatic and precise, using a single key light to cast gentle highlights and deep, soft shadows, emphasizing the product's form and texture. The mood is premium, sophisticated, and desirable.

The style emulates high-end commercial advertising photography, reminiscent of the clean aesthetic seen in luxury brand campaigns. The color palette should be true-to-life but rich and saturated.

--style raw
--ar 1:1

// --- Technical Parameters ---
// Photography: Commercial Product Shot, Studio Photography, Close-up
// Detail: 4K, HDR, Hyper-detailed, tack sharp focus on product
// Lens: 105mm Macro Lens
// Camera Effect: Beautiful soft bokeh on the background, no motion blur, crystal clear
`

// buildPrompt fills the photo prompt template. Missing brand names fall
// back to a neutral placeholder so the prompt stays well-formed.
func buildPrompt(productName, brandName, description string) string {
	if brandName == "" {
		brandName = "a premium brand"
	}
	r := strings.NewReplacer(
		"{product_name}", productName,
		"{brand_name}", brandName,
		"{product_description}", description,
	)
	return r.Replace(photoPromptTemplate)
}
